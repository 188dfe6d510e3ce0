package assistant

import (
	"regexp"
	"strings"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

// The classifier is an ordered rule chain: first match wins and later
// rules are never consulted. Ordering is load-bearing — the bedroom
// rule must sit before the budget rule so "3 bedroom" is not priced at
// three naira, and the affirmation rule must sit before the soft-close
// rule because their trigger words overlap ("nice", "love it").

var greetingRe = regexp.MustCompile(`(?i)\b(hello|hi|hey|good morning|good afternoon)\b`)

var affirmativeRe = wordListRe("yes", "yeah", "sure", "okay", "ok", "please", "like it", "love it", "nice", "want this")
var negationRe = wordListRe("no", "nope", "not really")

var offerWords = []string{"schedule", "inspection", "book", "proceed"}
var hardCloseRe = wordListRe("book", "buy", "take it", "payment")
var softCloseRe = wordListRe("like this", "nice", "beautiful", "great", "love it", "perfect")
var describeWords = []string{"tell me about", "describe", "details", "more info", "features"}
var priceWords = []string{"price", "cost", "much"}
var locationWords = []string{"location", "where"}
var houseRe = wordListRe("house", "flat", "duplex")
var landRe = wordListRe("land", "plot")

func wordListRe(words ...string) *regexp.Regexp {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

type ruleInput struct {
	table     *catalog.Table
	history   []Turn
	utterance string
	lower     string

	resolved bool
	current  catalog.Property
	hasProp  bool
}

func (in *ruleInput) currentProperty() (catalog.Property, bool) {
	if !in.resolved {
		in.current, in.hasProp = Resolve(in.table, in.history, in.utterance)
		in.resolved = true
	}
	return in.current, in.hasProp
}

// lastAssistantText is what the assistant said most recently; context
// for reading a bare "yes" as booking consent.
func (in *ruleInput) lastAssistantText() string {
	for i := len(in.history) - 1; i >= 0; i-- {
		if in.history[i].Role == RoleAssistant {
			return strings.ToLower(in.history[i].Text)
		}
	}
	return ""
}

type rule struct {
	name    string
	match   func(in *ruleInput) bool
	respond func(c *Classifier, in *ruleInput) Reply
}

var ruleChain = []rule{
	{
		name: "greeting",
		match: func(in *ruleInput) bool {
			return greetingRe.MatchString(in.utterance)
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			return Reply{Text: WelcomeText}
		},
	},
	{
		name: "booking-followup",
		match: func(in *ruleInput) bool {
			if !containsAny(in.lastAssistantText(), offerWords) {
				return false
			}
			if negationRe.MatchString(in.lower) {
				return true
			}
			if !affirmativeRe.MatchString(in.lower) {
				return false
			}
			_, ok := in.currentProperty()
			return ok
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			if negationRe.MatchString(in.lower) {
				return Reply{Text: differentCriteriaText}
			}
			p, _ := in.currentProperty()
			return Reply{Text: bookingConfirmText(p), Action: BookAction(p.ID)}
		},
	},
	{
		name: "hard-close",
		match: func(in *ruleInput) bool {
			return hardCloseRe.MatchString(in.lower)
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			if p, ok := in.currentProperty(); ok {
				return Reply{Text: bookingConfirmText(p), Action: BookAction(p.ID)}
			}
			all := in.table.All()
			if len(all) >= 2 {
				return Reply{Text: pickBetweenText(all[0], all[1])}
			}
			if len(all) == 1 {
				return Reply{Text: fallbackText(all[0]), Action: CardAction(all[0].ID)}
			}
			return Reply{Text: emptyBookText}
		},
	},
	{
		name: "soft-close",
		match: func(in *ruleInput) bool {
			if !softCloseRe.MatchString(in.lower) {
				return false
			}
			_, ok := in.currentProperty()
			return ok
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			p, _ := in.currentProperty()
			return Reply{Text: softCloseText(p), Action: CardAction(p.ID)}
		},
	},
	{
		name: "describe",
		match: func(in *ruleInput) bool {
			if !containsAny(in.lower, describeWords) {
				return false
			}
			_, ok := in.currentProperty()
			return ok
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			p, _ := in.currentProperty()
			return Reply{Text: describeText(p), Action: CardAction(p.ID)}
		},
	},
	{
		name: "bedrooms",
		match: func(in *ruleInput) bool {
			_, ok := ExtractBedrooms(in.utterance)
			return ok
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			n, _ := ExtractBedrooms(in.utterance)
			if p, ok := in.table.ByBedrooms(n); ok {
				return Reply{Text: bedroomMatchText(n, p), Action: CardAction(p.ID)}
			}
			if p, ok := in.table.NearBedrooms(n); ok {
				return Reply{Text: bedroomNearText(n, p), Action: CardAction(p.ID)}
			}
			if p, ok := in.table.RandomNonLand(c.rng); ok {
				return Reply{Text: bedroomFallbackText(n, p), Action: CardAction(p.ID)}
			}
			return Reply{Text: noStockText}
		},
	},
	{
		name: "budget",
		match: func(in *ruleInput) bool {
			_, ok := ExtractBudget(in.utterance)
			return ok
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			budget, _ := ExtractBudget(in.utterance)
			if p, ok := in.table.BestWithinBudget(budget); ok {
				return Reply{Text: budgetMatchText(budget, p), Action: CardAction(p.ID)}
			}
			if p, ok := in.table.CheapestLand(); ok {
				return Reply{Text: budgetLandText(p), Action: CardAction(p.ID)}
			}
			return Reply{Text: budgetNothingText}
		},
	},
	{
		name: "price-location",
		match: func(in *ruleInput) bool {
			return containsAny(in.lower, priceWords) || containsAny(in.lower, locationWords)
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			if p, ok := in.currentProperty(); ok {
				if containsAny(in.lower, locationWords) && !containsAny(in.lower, priceWords) {
					return Reply{Text: locationText(p), Action: CardAction(p.ID)}
				}
				return Reply{Text: priceText(p), Action: CardAction(p.ID)}
			}
			if min, max, ok := in.table.PriceRange(); ok {
				return Reply{Text: genericRangeText(min, max)}
			}
			return Reply{Text: noStockText}
		},
	},
	{
		name: "browse",
		match: func(in *ruleInput) bool {
			return houseRe.MatchString(in.lower) || landRe.MatchString(in.lower)
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			if landRe.MatchString(in.lower) && !houseRe.MatchString(in.lower) {
				if p, ok := in.table.Land(); ok {
					return Reply{Text: landText(p), Action: CardAction(p.ID)}
				}
				return Reply{Text: noStockText}
			}
			if p, ok := in.table.RandomNonLand(c.rng); ok {
				return Reply{Text: browseText(p), Action: CardAction(p.ID)}
			}
			return Reply{Text: noStockText}
		},
	},
	{
		name: "fallback",
		match: func(in *ruleInput) bool {
			return true
		},
		respond: func(c *Classifier, in *ruleInput) Reply {
			if p, ok := in.table.Random(c.rng); ok {
				return Reply{Text: fallbackText(p), Action: CardAction(p.ID)}
			}
			return Reply{Text: noStockText}
		},
	},
}
