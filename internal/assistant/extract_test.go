package assistant

import "testing"

func TestExtractBedrooms(t *testing.T) {
	cases := []struct {
		text string
		want int
		ok   bool
	}{
		{"I need a 3 bedroom flat", 3, true},
		{"looking for a 4-bed duplex", 4, true},
		{"any 2br around camp?", 2, true},
		{"a 5 room bungalow", 5, true},
		{"no numbers here", 0, false},
		{"3 plots of land", 0, false},
	}

	for _, tc := range cases {
		got, ok := ExtractBedrooms(tc.text)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractBedrooms(%q) = %d, %v; want %d, %v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractBudget(t *testing.T) {
	cases := []struct {
		text string
		want int64
		ok   bool
	}{
		{"my budget is 50m", 50_000_000, true},
		{"I can do 150k", 150_000, true},
		{"around 2 million", 2_000_000, true},
		{"500 naira", 500, true},
		{"₦1,200,000 tops", 1_200_000, true},
		{"I have 2000000 saved", 2_000_000, true},
		{"1.5m would work", 1_500_000, true},
		{"give me 3 options", 0, false},
		{"nothing numeric", 0, false},
	}

	for _, tc := range cases {
		got, ok := ExtractBudget(tc.text)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractBudget(%q) = %d, %v; want %d, %v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractBudgetMarkerBeatsNairaSign(t *testing.T) {
	// "₦500k" must read as 500,000, not 500.
	got, ok := ExtractBudget("₦500k")
	if !ok || got != 500_000 {
		t.Fatalf("ExtractBudget(₦500k) = %d, %v; want 500000, true", got, ok)
	}
}
