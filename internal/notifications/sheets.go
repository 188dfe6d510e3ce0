package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/leads"
)

// SheetsClient pushes leads to a Google Apps Script web app that
// appends a spreadsheet row. The script always answers 200 with an
// opaque body, so only transport failures are reported.
type SheetsClient struct {
	webhookURL string
	httpClient *http.Client
}

func NewSheetsClient(webhookURL string) *SheetsClient {
	if strings.TrimSpace(webhookURL) == "" {
		return nil
	}
	return &SheetsClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type sheetsRow struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Property  string `json:"property"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

func (c *SheetsClient) Push(ctx context.Context, lead leads.Lead) error {
	if c == nil {
		return nil
	}

	row := sheetsRow{
		Name:      lead.Name,
		Phone:     lead.Phone,
		Property:  lead.Property,
		Date:      lead.Date,
		Timestamp: lead.CreatedAt.UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("sheets marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("sheets create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	resp.Body.Close()
	return nil
}
