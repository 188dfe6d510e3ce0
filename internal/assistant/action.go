package assistant

import (
	"regexp"
	"strings"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

type ActionKind string

const (
	ActionNone ActionKind = ""
	ActionBook ActionKind = "book"
	ActionCard ActionKind = "card"
)

// Action is the structured side-channel of a reply: start the booking
// flow, render a listing card, or nothing.
type Action struct {
	Kind       ActionKind `json:"kind"`
	PropertyID string     `json:"property_id,omitempty"`
}

func BookAction(id string) Action {
	return Action{Kind: ActionBook, PropertyID: id}
}

func CardAction(id string) Action {
	return Action{Kind: ActionCard, PropertyID: id}
}

var tokenRe = regexp.MustCompile(`\[\s*(BOOK|CARD)\s*:\s*([A-Za-z0-9_-]+)\s*\]`)
var markdownRe = regexp.MustCompile("[*#_~`>|]")
var blankRunsRe = regexp.MustCompile(`\n{3,}`)

// ExtractAction parses generated text for [BOOK: id] / [CARD: id]
// markers. The first marker naming a real listing wins; every marker is
// stripped either way, along with markdown noise the model was told not
// to produce. Unknown ids degrade to plain text.
func ExtractAction(raw string, table *catalog.Table) (string, Action) {
	action := Action{}
	for _, m := range tokenRe.FindAllStringSubmatch(raw, -1) {
		if action.Kind != ActionNone {
			break
		}
		if _, ok := table.ByID(m[2]); !ok {
			continue
		}
		switch m[1] {
		case "BOOK":
			action = BookAction(m[2])
		case "CARD":
			action = CardAction(m[2])
		}
	}

	clean := tokenRe.ReplaceAllString(raw, "")
	clean = markdownRe.ReplaceAllString(clean, "")
	clean = blankRunsRe.ReplaceAllString(clean, "\n\n")
	return strings.TrimSpace(clean), action
}
