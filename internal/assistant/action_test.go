package assistant

import (
	"testing"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

func TestExtractActionBook(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	text, action := ExtractAction("Excellent choice, let's lock it in. [BOOK: 1]", table)
	if action.Kind != ActionBook || action.PropertyID != "1" {
		t.Fatalf("unexpected action %+v", action)
	}
	if text != "Excellent choice, let's lock it in." {
		t.Fatalf("marker not stripped: %q", text)
	}
}

func TestExtractActionFirstValidWins(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	_, action := ExtractAction("[CARD: 99] [CARD: 2] [BOOK: 3]", table)
	if action.Kind != ActionCard || action.PropertyID != "2" {
		t.Fatalf("expected first valid marker to win, got %+v", action)
	}
}

func TestExtractActionUnknownID(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	text, action := ExtractAction("Have a look. [CARD: 99]", table)
	if action.Kind != ActionNone {
		t.Fatalf("unknown id must degrade to plain text, got %+v", action)
	}
	if text != "Have a look." {
		t.Fatalf("unknown marker not stripped: %q", text)
	}
}

func TestExtractActionStripsMarkdown(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	text, _ := ExtractAction("*Great* pick: `verified` #papers", table)
	if text != "Great pick: verified papers" {
		t.Fatalf("markdown not stripped: %q", text)
	}
}

func TestExtractActionTolerantSpacing(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	_, action := ExtractAction("See it here [ CARD : 4 ]", table)
	if action.Kind != ActionCard || action.PropertyID != "4" {
		t.Fatalf("spaced marker not parsed, got %+v", action)
	}
}
