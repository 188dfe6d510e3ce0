package dialogue

import (
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/assistant"
)

// Draft accumulates the lead while the booking flow runs. The property
// title is fixed the moment booking triggers and never changes, even if
// other listings come up mid-flow.
type Draft struct {
	Name        string    `json:"name,omitempty"`
	Property    string    `json:"property,omitempty"`
	Date        string    `json:"date,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

func (d Draft) Complete() bool {
	return d.Name != "" && d.Property != "" && d.Date != "" && d.Phone != ""
}

// Session is one visitor's conversation: transcript, dialogue state and
// the lead draft. Each browser session owns exactly one.
type Session struct {
	ID          string           `json:"id"`
	State       State            `json:"state"`
	History     []assistant.Turn `json:"history"`
	Draft       Draft            `json:"draft"`
	DateOptions []string         `json:"date_options,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Lead is the completed record handed to the dispatcher exactly once
// per flow.
type Lead struct {
	SessionID string
	Name      string
	Phone     string
	Property  string
	Date      string
	Timestamp time.Time
}
