// Package assistant implements the rule-based sales consultant used
// whenever the generative backend is unavailable. It is deterministic
// apart from the browse/fallback listing picks, side-effect free, and
// never returns an empty reply.
package assistant

import (
	"math/rand"
	"strings"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

// Reply is the classifier output: display text plus at most one action.
type Reply struct {
	Text   string
	Action Action
}

type Classifier struct {
	rng *rand.Rand
}

func NewClassifier(rng *rand.Rand) *Classifier {
	return &Classifier{rng: rng}
}

// Classify maps the conversation so far plus the newest utterance to a
// reply. History is read, never written; the caller appends turns. The
// utterance must already be trimmed and non-empty.
func (c *Classifier) Classify(table *catalog.Table, history []Turn, utterance string) Reply {
	in := &ruleInput{
		table:     table,
		history:   history,
		utterance: utterance,
		lower:     strings.ToLower(utterance),
	}

	for _, r := range ruleChain {
		if r.match(in) {
			return r.respond(c, in)
		}
	}

	// The fallback rule always matches; this is unreachable.
	return Reply{Text: noStockText}
}
