package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Client talks to the Gemini generateContent API. It is optional: a
// nil Client means the rule-based classifier handles every turn.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	TopK             int     `json:"topK,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Converse sends the turn history as alternating user/model entries
// plus the newest utterance and returns the raw reply text. The caller
// is responsible for extracting [BOOK: id] / [CARD: id] markers.
func (c *Client) Converse(ctx context.Context, table *catalog.Table, history []assistant.Turn, utterance string) (string, error) {
	if c == nil {
		return "", errors.New("genai client not configured")
	}

	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == assistant.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: turn.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: utterance}}})

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction(table)}}},
		Contents:          contents,
		GenerationConfig: &generationConfig{
			Temperature: 0.4,
			TopP:        0.8,
			TopK:        40,
		},
	}

	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("genai marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("genai create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("genai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("genai generate failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("genai decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("genai response missing candidates")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("genai response empty text")
	}
	return text, nil
}

func systemInstruction(table *catalog.Table) string {
	var b strings.Builder
	b.WriteString(`You are the Abisam Assistant, an elite, high-speed real estate sales closer for Abisam Properties in Abeokuta, Nigeria.

CORE DIRECTIVES:
- MAXIMUM SPEED: keep responses punchy and direct. Never be wordy.
- STRICT PLAIN TEXT: no markdown, no decorative symbols, standard punctuation only.
- LOCAL EXPERTISE: use Abeokuta terms (C of O, omonile-free, survey, self-contain) naturally.
- THE CLOSER: drive every exchange towards a booked inspection.

ACTIONS:
- When you suggest a specific listing, append the token [CARD: id] at the very end of the mention.
- When the user agrees to book or inspect a specific listing, append [BOOK: id] instead.
- Use at most one token per reply.

INVENTORY:
`)
	for _, p := range table.All() {
		fmt.Fprintf(&b, "ID %s: %s in %s, %s Naira. %s\n", p.ID, p.Title, p.Location, catalog.FormatAmount(p.Price), p.Description)
	}
	return b.String()
}
