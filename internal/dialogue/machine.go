// Package dialogue drives the booking flow: free chat until a booking
// action fires, then name, inspection date and phone collection, then a
// single dispatch of the finished lead.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

var (
	ErrEmptyMessage       = errors.New("empty message")
	ErrDateNotOffered     = errors.New("date not offered")
	ErrConversationClosed = errors.New("conversation closed")
)

// Generator is the optional text-generation backend. Any error from it
// silently routes the turn through the rule-based classifier instead.
type Generator interface {
	Converse(ctx context.Context, table *catalog.Table, history []assistant.Turn, utterance string) (string, error)
}

// Dispatcher receives the completed lead. Called exactly once per flow,
// at the PHONE_INPUT to CONCLUSION transition; failures are logged and
// never surfaced to the visitor.
type Dispatcher interface {
	Dispatch(ctx context.Context, lead Lead) error
}

type Machine struct {
	classifier    *assistant.Classifier
	catalog       *catalog.Holder
	gen           Generator
	dispatcher    Dispatcher
	fallbackDelay time.Duration
	location      *time.Location
	log           *slog.Logger

	// Now is the clock; tests pin it.
	Now func() time.Time
}

func NewMachine(classifier *assistant.Classifier, holder *catalog.Holder, gen Generator, dispatcher Dispatcher, fallbackDelay time.Duration, loc *time.Location, log *slog.Logger) *Machine {
	if loc == nil {
		loc = time.Local
	}
	return &Machine{
		classifier:    classifier,
		catalog:       holder,
		gen:           gen,
		dispatcher:    dispatcher,
		fallbackDelay: fallbackDelay,
		location:      loc,
		log:           log,
		Now:           time.Now,
	}
}

// NewSession opens a conversation in CHAT with the greeting on record.
func (m *Machine) NewSession(id string) *Session {
	now := m.Now()
	return &Session{
		ID:        id,
		State:     StateChat,
		History:   []assistant.Turn{assistant.AssistantTurn(assistant.WelcomeText, now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset returns a session to CHAT, dropping the lead draft and every
// turn except a fresh greeting.
func (m *Machine) Reset(s *Session) {
	now := m.Now()
	s.State = StateChat
	s.Draft = Draft{}
	s.DateOptions = nil
	s.History = []assistant.Turn{assistant.AssistantTurn(assistant.WelcomeText, now)}
	s.UpdatedAt = now
}

// HandleMessage routes one user input according to the current state
// and appends the resulting turns to the session.
func (m *Machine) HandleMessage(ctx context.Context, s *Session, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	now := m.Now()

	switch s.State {
	case StateChat:
		m.handleChat(ctx, s, text, now)
	case StateNameInput:
		s.History = append(s.History, assistant.UserTurn(text, now))
		s.Draft.Name = text
		s.DateOptions = InspectionDates(now.In(m.location))
		turn := assistant.AssistantTurn(schedulePromptText(text), now)
		turn.DateOptions = s.DateOptions
		s.History = append(s.History, turn)
		s.State = StateScheduling
	case StateScheduling:
		if !s.offered(text) {
			return ErrDateNotOffered
		}
		s.History = append(s.History, assistant.UserTurn(text, now))
		s.Draft.Date = text
		s.History = append(s.History, assistant.AssistantTurn(phonePromptText, now))
		s.State = StatePhoneInput
	case StatePhoneInput:
		s.History = append(s.History, assistant.UserTurn(text, now))
		s.Draft.Phone = text
		s.Draft.CompletedAt = now
		m.dispatch(ctx, s, now)
		s.History = append(s.History, assistant.AssistantTurn(conclusionText(s.Draft), now))
		s.State = StateConclusion
	case StateConclusion:
		return ErrConversationClosed
	default:
		return fmt.Errorf("unknown dialogue state %q", s.State)
	}

	s.UpdatedAt = now
	return nil
}

func (m *Machine) handleChat(ctx context.Context, s *Session, text string, now time.Time) {
	table := m.catalog.Table()
	prior := s.History
	s.History = append(s.History, assistant.UserTurn(text, now))

	replyText, action := m.respond(ctx, table, prior, text)

	turn := assistant.AssistantTurn(replyText, now)
	if action.Kind != assistant.ActionNone {
		if p, ok := table.ByID(action.PropertyID); ok {
			turn.Property = &p
		}
	}
	s.History = append(s.History, turn)

	if action.Kind == assistant.ActionBook {
		if p, ok := table.ByID(action.PropertyID); ok {
			s.Draft.Property = p.Title
			s.History = append(s.History, assistant.AssistantTurn(namePromptText, now))
			s.State = StateNameInput
		}
	}
}

// respond prefers the generative backend and falls back to the rule
// chain on any failure. The fallback waits out a short simulated
// thinking delay so perceived latency stays consistent either way.
func (m *Machine) respond(ctx context.Context, table *catalog.Table, history []assistant.Turn, text string) (string, assistant.Action) {
	if m.gen != nil {
		raw, err := m.gen.Converse(ctx, table, history, text)
		if err == nil {
			return assistant.ExtractAction(raw, table)
		}
		m.log.Warn("dialogue: generative backend failed, using rules", slog.String("error", err.Error()))
	}

	if m.fallbackDelay > 0 {
		select {
		case <-time.After(m.fallbackDelay):
		case <-ctx.Done():
		}
	}

	reply := m.classifier.Classify(table, history, text)
	return reply.Text, reply.Action
}

func (m *Machine) dispatch(ctx context.Context, s *Session, now time.Time) {
	if m.dispatcher == nil || !s.Draft.Complete() {
		return
	}
	lead := Lead{
		SessionID: s.ID,
		Name:      s.Draft.Name,
		Phone:     s.Draft.Phone,
		Property:  s.Draft.Property,
		Date:      s.Draft.Date,
		Timestamp: now,
	}
	if err := m.dispatcher.Dispatch(ctx, lead); err != nil {
		m.log.Error("dialogue: lead dispatch failed",
			slog.String("session_id", s.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Session) offered(text string) bool {
	for _, d := range s.DateOptions {
		if d == text {
			return true
		}
	}
	return false
}

const namePromptText = "Perfect. To lock in your inspection, may I have your full name?"

func schedulePromptText(name string) string {
	return fmt.Sprintf("Thank you %s. Pick the day that suits you for the inspection:", name)
}

const phonePromptText = "Noted. What phone number can our head agent reach you on?"

func conclusionText(d Draft) string {
	return fmt.Sprintf("You're all set, %s. Our head agent will call %s to confirm your %s inspection of %s. We'll see you there!",
		d.Name, d.Phone, d.Date, d.Property)
}
