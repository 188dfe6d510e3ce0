package assistant

import (
	"testing"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

func TestResolveUtteranceWins(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())
	history := []Turn{
		{Role: RoleAssistant, Text: "Take a look at 4-Bedroom Duplex in Adigbe.", CreatedAt: time.Now()},
	}

	p, ok := Resolve(table, history, "what about the cosy self-contain near funaab?")
	if !ok || p.ID != "2" {
		t.Fatalf("expected property 2 from utterance, got %+v ok=%v", p, ok)
	}
}

func TestResolveNewestHistoryFirst(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())
	history := []Turn{
		{Role: RoleUser, Text: "tell me about the Modern 3-Bedroom Flat in Oke-Mosan"},
		{Role: RoleAssistant, Text: "A fine flat."},
		{Role: RoleAssistant, Text: "Also consider 4-Bedroom Duplex in Adigbe."},
	}

	p, ok := Resolve(table, history, "how much?")
	if !ok || p.ID != "3" {
		t.Fatalf("expected most recent mention to win, got %+v ok=%v", p, ok)
	}
}

func TestResolveNothing(t *testing.T) {
	table := catalog.NewTable(catalog.Defaults())

	if _, ok := Resolve(table, nil, "hello there"); ok {
		t.Fatal("expected no resolution")
	}
}
