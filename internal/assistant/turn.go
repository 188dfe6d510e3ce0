package assistant

import (
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Assistant turns may carry a
// listing to render as a card, or a set of selectable inspection dates.
type Turn struct {
	Role        Role              `json:"role"`
	Text        string            `json:"text"`
	Property    *catalog.Property `json:"property,omitempty"`
	DateOptions []string          `json:"date_options,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func UserTurn(text string, at time.Time) Turn {
	return Turn{Role: RoleUser, Text: text, CreatedAt: at}
}

func AssistantTurn(text string, at time.Time) Turn {
	return Turn{Role: RoleAssistant, Text: text, CreatedAt: at}
}
