package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/cache"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/dialogue"
	"github.com/Hopetizzy/Abisam-properties/internal/validation"
	"github.com/Hopetizzy/Abisam-properties/internal/whatsapp"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	classifier := assistant.NewClassifier(rand.New(rand.NewSource(1)))
	holder := catalog.NewHolder(catalog.NewTable(catalog.Defaults()))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	machine := dialogue.NewMachine(classifier, holder, nil, nil, 0, time.UTC, logger)
	machine.Now = func() time.Time { return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) }

	store := NewStore(cache.NewMemory(), time.Hour)
	links := whatsapp.NewBuilder("2348123456789")
	handler := NewHandler(store, machine, nil, links, validation.New(), logger)

	r := chi.NewRouter()
	r.Post("/sessions", handler.CreateSession)
	r.Get("/sessions/{id}", handler.GetSession)
	r.Post("/sessions/{id}/messages", handler.PostMessage)
	r.Post("/sessions/{id}/reset", handler.ResetSession)
	r.Get("/sessions/{id}/handoff", handler.Handoff)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	out := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("response not JSON: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, out
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec, out := doJSON(t, router, http.MethodPost, "/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var id string
	if err := json.Unmarshal(out["id"], &id); err != nil || id == "" {
		t.Fatalf("missing session id: %s", rec.Body.String())
	}
	return id
}

func TestCreateSessionReturnsGreeting(t *testing.T) {
	router := newTestRouter(t)

	rec, out := doJSON(t, router, http.MethodPost, "/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	var history []assistant.Turn
	if err := json.Unmarshal(out["history"], &history); err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Text != assistant.WelcomeText {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestPostMessageAdvancesConversation(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router)

	rec, out := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages",
		`{"text":"I want to book the Modern 3-Bedroom Flat in Oke-Mosan"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var state string
	if err := json.Unmarshal(out["state"], &state); err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != string(dialogue.StateNameInput) {
		t.Fatalf("state = %q", state)
	}
}

func TestPostMessageValidation(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"text":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty text status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", rec.Code)
	}
}

func TestPostMessageUnknownSession(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/sessions/nope/messages", `{"text":"hello"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRejectedDateKeepsState(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router)

	for _, msg := range []string{"book the Cosy Self-Contain near FUNAAB", "Ada"} {
		rec, _ := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages",
			fmt.Sprintf(`{"text":%q}`, msg))
		if rec.Code != http.StatusOK {
			t.Fatalf("turn %q status = %d", msg, rec.Code)
		}
	}

	rec, out := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"text":"next tuesday"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("off-menu date status = %d", rec.Code)
	}

	var errMsg string
	if err := json.Unmarshal(out["error"], &errMsg); err != nil || !strings.Contains(errMsg, "offered") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	_, got := doJSON(t, router, http.MethodGet, "/sessions/"+id, "")
	var state string
	json.Unmarshal(got["state"], &state)
	if state != string(dialogue.StateScheduling) {
		t.Fatalf("state after rejection = %q", state)
	}
}

func TestResetSession(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router)

	doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"text":"book the 4-Bedroom Duplex in Adigbe"}`)

	rec, out := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}

	var history []assistant.Turn
	if err := json.Unmarshal(out["history"], &history); err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("reset history length = %d", len(history))
	}
}

func TestHandoffWithoutSummarizer(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router)

	rec, out := doJSON(t, router, http.MethodGet, "/sessions/"+id+"/handoff", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("handoff status = %d: %s", rec.Code, rec.Body.String())
	}

	var link string
	if err := json.Unmarshal(out["url"], &link); err != nil {
		t.Fatalf("url: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/2348123456789?text=") {
		t.Fatalf("unexpected handoff url %q", link)
	}
}
