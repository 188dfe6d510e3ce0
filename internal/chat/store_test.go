package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/cache"
	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(cache.NewMemory(), time.Hour)
	ctx := context.Background()

	session := &dialogue.Session{
		ID:    "abc123",
		State: dialogue.StateScheduling,
		History: []assistant.Turn{
			{Role: assistant.RoleAssistant, Text: assistant.WelcomeText, CreatedAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)},
		},
		Draft:       dialogue.Draft{Name: "Ada", Property: "Cosy Self-Contain near FUNAAB"},
		DateOptions: []string{"Saturday, Mar 7", "Monday, Mar 9", "Wednesday, Mar 11"},
	}

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx, "abc123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != dialogue.StateScheduling {
		t.Fatalf("state = %q", loaded.State)
	}
	if loaded.Draft.Name != "Ada" || loaded.Draft.Property != "Cosy Self-Contain near FUNAAB" {
		t.Fatalf("draft = %+v", loaded.Draft)
	}
	if len(loaded.DateOptions) != 3 || loaded.DateOptions[1] != "Monday, Mar 9" {
		t.Fatalf("date options = %v", loaded.DateOptions)
	}
	if len(loaded.History) != 1 || loaded.History[0].Text != assistant.WelcomeText {
		t.Fatalf("history = %+v", loaded.History)
	}
}

func TestStoreNotFound(t *testing.T) {
	store := NewStore(cache.NewMemory(), time.Hour)

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(cache.NewMemory(), time.Hour)
	ctx := context.Background()

	session := &dialogue.Session{ID: "gone"}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "gone"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
