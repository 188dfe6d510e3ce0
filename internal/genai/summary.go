package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LeadSummary is the structured profile handed over to the head agent
// alongside the WhatsApp deep link.
type LeadSummary struct {
	Intent       string `json:"intent"`
	Location     string `json:"location"`
	Budget       string `json:"budget"`
	PropertyType string `json:"propertyType"`
	Summary      string `json:"summary"`
}

// FallbackSummary is used whenever the backend cannot produce one; the
// handoff must never fail just because the summarizer did.
func FallbackSummary() LeadSummary {
	return LeadSummary{
		Intent:       "Buy",
		Location:     "Abeokuta",
		Budget:       "N/A",
		PropertyType: "Residential",
		Summary:      "Immediate lead from the Abisam web assistant.",
	}
}

const summaryPrompt = `Summarize this chat into a professional lead profile. Output ONLY valid JSON matching this schema:
{ "intent": "Buy" | "Rent" | "Sell", "location": "string", "budget": "string", "propertyType": "string", "summary": "string" }

History:
%s`

// SummarizeLead condenses a chat transcript into a LeadSummary via the
// JSON-mode endpoint.
func (c *Client) SummarizeLead(ctx context.Context, transcript string) (LeadSummary, error) {
	if c == nil {
		return LeadSummary{}, errors.New("genai client not configured")
	}

	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: fmt.Sprintf(summaryPrompt, transcript)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	raw, err := c.generate(ctx, req)
	if err != nil {
		return LeadSummary{}, err
	}

	var summary LeadSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return LeadSummary{}, fmt.Errorf("genai summary parse: %w", err)
	}
	if summary.Summary == "" {
		return LeadSummary{}, errors.New("genai summary missing text")
	}
	return summary, nil
}
