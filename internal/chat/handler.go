package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
	"github.com/Hopetizzy/Abisam-properties/internal/genai"
	"github.com/Hopetizzy/Abisam-properties/internal/httpx"
	"github.com/Hopetizzy/Abisam-properties/internal/middleware"
	"github.com/Hopetizzy/Abisam-properties/internal/transport"
	"github.com/Hopetizzy/Abisam-properties/internal/validation"
	"github.com/Hopetizzy/Abisam-properties/internal/whatsapp"
)

type MessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type Handler struct {
	store    *Store
	machine  *dialogue.Machine
	summarer *genai.Client
	links    *whatsapp.Builder
	val      *validation.Validator
	log      *slog.Logger
}

func NewHandler(store *Store, machine *dialogue.Machine, summarer *genai.Client, links *whatsapp.Builder, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		machine:  machine,
		summarer: summarer,
		links:    links,
		val:      val,
		log:      log,
	}
}

// CreateSession opens a fresh conversation and returns it, greeting
// included.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	session := h.machine.NewSession(primitive.NewObjectID().Hex())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Save(ctx, session); err != nil {
		log.Error("chat create: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "session store error", nil)
		return
	}

	log.Info("chat create: ok", slog.String("session_id", session.ID))
	transport.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, ok := h.loadSession(ctx, w, log, r)
	if !ok {
		return
	}

	transport.WriteJSON(w, http.StatusOK, session)
}

// PostMessage runs one turn of the conversation and returns the updated
// session.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req MessageRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("chat message: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("chat message: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	session, ok := h.loadSession(ctx, w, log, r)
	if !ok {
		return
	}

	if err := h.machine.HandleMessage(ctx, session, req.Text); err != nil {
		switch {
		case errors.Is(err, dialogue.ErrEmptyMessage):
			transport.WriteError(w, http.StatusBadRequest, "empty message", nil)
		case errors.Is(err, dialogue.ErrDateNotOffered):
			transport.WriteError(w, http.StatusBadRequest, "pick one of the offered dates", map[string]string{"date_options": strings.Join(session.DateOptions, "; ")})
		case errors.Is(err, dialogue.ErrConversationClosed):
			transport.WriteError(w, http.StatusConflict, "conversation closed", nil)
		default:
			log.Error("chat message: dialogue error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "dialogue error", nil)
		}
		return
	}

	if err := h.store.Save(ctx, session); err != nil {
		log.Error("chat message: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "session store error", nil)
		return
	}

	log.Info("chat message: ok",
		slog.String("session_id", session.ID),
		slog.String("state", string(session.State)),
	)
	transport.WriteJSON(w, http.StatusOK, session)
}

// ResetSession drops the transcript and lead draft and restarts the
// conversation from the greeting.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, ok := h.loadSession(ctx, w, log, r)
	if !ok {
		return
	}

	h.machine.Reset(session)
	if err := h.store.Save(ctx, session); err != nil {
		log.Error("chat reset: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "session store error", nil)
		return
	}

	log.Info("chat reset: ok", slog.String("session_id", session.ID))
	transport.WriteJSON(w, http.StatusOK, session)
}

// Handoff summarizes the conversation into a lead profile and returns a
// WhatsApp link carrying it. Summarization failures fall back to a
// generic profile rather than blocking the handoff.
func (h *Handler) Handoff(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	session, ok := h.loadSession(ctx, w, log, r)
	if !ok {
		return
	}

	summary := genai.FallbackSummary()
	if h.summarer != nil {
		got, err := h.summarer.SummarizeLead(ctx, transcript(session.History))
		if err != nil {
			log.Warn("chat handoff: summary failed", slog.String("error", err.Error()))
		} else {
			summary = got
		}
	}

	log.Info("chat handoff: ok", slog.String("session_id", session.ID))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"url":     h.links.ProfileLink(summary),
		"summary": summary,
	})
}

func (h *Handler) loadSession(ctx context.Context, w http.ResponseWriter, log *slog.Logger, r *http.Request) (*dialogue.Session, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("chat: missing session id")
		transport.WriteError(w, http.StatusBadRequest, "missing session id", nil)
		return nil, false
	}

	session, err := h.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			log.Warn("chat: session not found", slog.String("session_id", id))
			transport.WriteError(w, http.StatusNotFound, "session not found", nil)
			return nil, false
		}
		log.Error("chat: store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "session store error", nil)
		return nil, false
	}
	return session, true
}

func transcript(history []assistant.Turn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, strings.ToUpper(string(turn.Role))+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
