package assistant

import "github.com/Hopetizzy/Abisam-properties/internal/catalog"

// Resolve infers the listing currently under discussion: a title
// mentioned in the new utterance wins, otherwise the most recent turn
// that mentioned one. Purely a lookup over text; it owns nothing and
// mutates nothing.
func Resolve(table *catalog.Table, history []Turn, utterance string) (catalog.Property, bool) {
	if p, ok := table.ByTitleMention(utterance); ok {
		return p, true
	}
	for i := len(history) - 1; i >= 0; i-- {
		if p, ok := table.ByTitleMention(history[i].Text); ok {
			return p, true
		}
	}
	return catalog.Property{}, false
}
