package dialogue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

type fakeDispatcher struct {
	leads []Lead
	err   error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, lead Lead) error {
	f.leads = append(f.leads, lead)
	return f.err
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Converse(ctx context.Context, table *catalog.Table, history []assistant.Turn, utterance string) (string, error) {
	return f.text, f.err
}

func newTestMachine(gen Generator, dispatcher Dispatcher) *Machine {
	classifier := assistant.NewClassifier(rand.New(rand.NewSource(1)))
	holder := catalog.NewHolder(catalog.NewTable(catalog.Defaults()))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMachine(classifier, holder, gen, dispatcher, 0, time.UTC, logger)
	m.Now = func() time.Time { return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) }
	return m
}

func TestNewSessionStartsWithGreeting(t *testing.T) {
	m := newTestMachine(nil, nil)
	s := m.NewSession("s1")

	if s.State != StateChat {
		t.Fatalf("state = %q", s.State)
	}
	if len(s.History) != 1 || s.History[0].Text != assistant.WelcomeText {
		t.Fatalf("unexpected opening history: %+v", s.History)
	}
}

func TestBookingFlowEndToEnd(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	m := newTestMachine(nil, dispatcher)
	s := m.NewSession("s1")
	ctx := context.Background()

	if err := m.HandleMessage(ctx, s, "I want to book the Modern 3-Bedroom Flat in Oke-Mosan"); err != nil {
		t.Fatalf("chat turn: %v", err)
	}
	if s.State != StateNameInput {
		t.Fatalf("expected name input, got %q", s.State)
	}
	if s.Draft.Property != "Modern 3-Bedroom Flat in Oke-Mosan" {
		t.Fatalf("draft property = %q", s.Draft.Property)
	}

	if err := m.HandleMessage(ctx, s, "Tunde Bakare"); err != nil {
		t.Fatalf("name turn: %v", err)
	}
	if s.State != StateScheduling {
		t.Fatalf("expected scheduling, got %q", s.State)
	}
	if len(s.DateOptions) != 3 {
		t.Fatalf("expected 3 date options, got %v", s.DateOptions)
	}
	if s.DateOptions[0] != "Saturday, Mar 7" {
		t.Fatalf("unexpected first option %q", s.DateOptions[0])
	}

	// A date that was never offered is rejected without advancing.
	before := len(s.History)
	if err := m.HandleMessage(ctx, s, "tomorrow"); !errors.Is(err, ErrDateNotOffered) {
		t.Fatalf("expected ErrDateNotOffered, got %v", err)
	}
	if s.State != StateScheduling || len(s.History) != before {
		t.Fatalf("rejected date must not advance: state=%q history=%d", s.State, len(s.History))
	}

	if err := m.HandleMessage(ctx, s, s.DateOptions[1]); err != nil {
		t.Fatalf("date turn: %v", err)
	}
	if s.State != StatePhoneInput {
		t.Fatalf("expected phone input, got %q", s.State)
	}

	if err := m.HandleMessage(ctx, s, "08012345678"); err != nil {
		t.Fatalf("phone turn: %v", err)
	}
	if s.State != StateConclusion {
		t.Fatalf("expected conclusion, got %q", s.State)
	}

	if len(dispatcher.leads) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(dispatcher.leads))
	}
	lead := dispatcher.leads[0]
	if lead.SessionID != "s1" || lead.Name != "Tunde Bakare" || lead.Phone != "08012345678" {
		t.Fatalf("unexpected lead %+v", lead)
	}
	if lead.Property != "Modern 3-Bedroom Flat in Oke-Mosan" || lead.Date != "Monday, Mar 9" {
		t.Fatalf("unexpected lead %+v", lead)
	}

	// The conversation is closed; nothing dispatches twice.
	if err := m.HandleMessage(ctx, s, "hello again"); !errors.Is(err, ErrConversationClosed) {
		t.Fatalf("expected ErrConversationClosed, got %v", err)
	}
	if len(dispatcher.leads) != 1 {
		t.Fatalf("dispatch ran again: %d", len(dispatcher.leads))
	}
}

func TestDispatchFailureStaysSilent(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("webhook down")}
	m := newTestMachine(nil, dispatcher)
	s := m.NewSession("s1")
	ctx := context.Background()

	steps := []string{
		"book the Cosy Self-Contain near FUNAAB",
		"Ada",
	}
	for _, msg := range steps {
		if err := m.HandleMessage(ctx, s, msg); err != nil {
			t.Fatalf("HandleMessage(%q): %v", msg, err)
		}
	}
	if err := m.HandleMessage(ctx, s, s.DateOptions[0]); err != nil {
		t.Fatalf("date turn: %v", err)
	}

	if err := m.HandleMessage(ctx, s, "07011112222"); err != nil {
		t.Fatalf("dispatch failure must not surface: %v", err)
	}
	if s.State != StateConclusion {
		t.Fatalf("expected conclusion, got %q", s.State)
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	m := newTestMachine(nil, nil)
	s := m.NewSession("s1")

	if err := m.HandleMessage(context.Background(), s, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(s.History) != 1 {
		t.Fatalf("empty input must not be recorded: %d", len(s.History))
	}
}

func TestResetReturnsToGreeting(t *testing.T) {
	m := newTestMachine(nil, &fakeDispatcher{})
	s := m.NewSession("s1")
	ctx := context.Background()

	if err := m.HandleMessage(ctx, s, "book the 4-Bedroom Duplex in Adigbe"); err != nil {
		t.Fatalf("chat turn: %v", err)
	}
	if s.State != StateNameInput {
		t.Fatalf("expected name input, got %q", s.State)
	}

	m.Reset(s)
	if s.State != StateChat {
		t.Fatalf("expected chat after reset, got %q", s.State)
	}
	if len(s.History) != 1 || s.History[0].Text != assistant.WelcomeText {
		t.Fatalf("reset history = %+v", s.History)
	}
	if s.Draft != (Draft{}) {
		t.Fatalf("draft not cleared: %+v", s.Draft)
	}
	if s.DateOptions != nil {
		t.Fatalf("date options not cleared: %v", s.DateOptions)
	}
}

func TestGeneratorReplyCarriesCard(t *testing.T) {
	gen := &fakeGenerator{text: "Take a look at this duplex. [CARD: 3]"}
	m := newTestMachine(gen, nil)
	s := m.NewSession("s1")

	if err := m.HandleMessage(context.Background(), s, "what do you have?"); err != nil {
		t.Fatalf("chat turn: %v", err)
	}
	if s.State != StateChat {
		t.Fatalf("card must not change state, got %q", s.State)
	}

	last := s.History[len(s.History)-1]
	if last.Property == nil || last.Property.ID != "3" {
		t.Fatalf("expected property 3 on the turn, got %+v", last.Property)
	}
	if last.Text != "Take a look at this duplex." {
		t.Fatalf("marker not stripped: %q", last.Text)
	}
}

func TestGeneratorBookStartsFlow(t *testing.T) {
	gen := &fakeGenerator{text: "Let's lock it in. [BOOK: 2]"}
	m := newTestMachine(gen, nil)
	s := m.NewSession("s1")

	if err := m.HandleMessage(context.Background(), s, "yes do it"); err != nil {
		t.Fatalf("chat turn: %v", err)
	}
	if s.State != StateNameInput {
		t.Fatalf("expected name input, got %q", s.State)
	}
	if s.Draft.Property != "Cosy Self-Contain near FUNAAB" {
		t.Fatalf("draft property = %q", s.Draft.Property)
	}
}

func TestGeneratorFailureFallsBackToRules(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exhausted")}
	m := newTestMachine(gen, nil)
	s := m.NewSession("s1")

	if err := m.HandleMessage(context.Background(), s, "hello"); err != nil {
		t.Fatalf("chat turn: %v", err)
	}

	last := s.History[len(s.History)-1]
	if last.Text != assistant.WelcomeText {
		t.Fatalf("expected rule-based greeting, got %q", last.Text)
	}
}
