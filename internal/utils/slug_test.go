package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Modern 3-Bedroom Flat in Oke-Mosan", "modern-3-bedroom-flat-in-oke-mosan"},
		{"Prime 2 Plots of Land at Obantoko", "prime-2-plots-of-land-at-obantoko"},
		{"  Duplex & Bungalow / Mix  ", "duplex-and-bungalow-mix"},
		{"Omo'nile Free!!", "omonile-free"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
