package catalog

import (
	"math/rand"
	"strings"
)

// Table is an immutable snapshot of the catalog. Lookups never mutate
// it; admin edits build a fresh Table and swap it through a Holder.
type Table struct {
	items []Property
	byID  map[string]Property
}

func NewTable(items []Property) *Table {
	copied := make([]Property, len(items))
	copy(copied, items)
	byID := make(map[string]Property, len(copied))
	for _, p := range copied {
		byID[p.ID] = p
	}
	return &Table{items: copied, byID: byID}
}

func (t *Table) Len() int {
	return len(t.items)
}

func (t *Table) All() []Property {
	out := make([]Property, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Table) ByID(id string) (Property, bool) {
	p, ok := t.byID[id]
	return p, ok
}

// ByTitleMention reports the first listing whose title appears inside
// the given text, case-insensitively.
func (t *Table) ByTitleMention(text string) (Property, bool) {
	lower := strings.ToLower(text)
	for _, p := range t.items {
		if strings.Contains(lower, strings.ToLower(p.Title)) {
			return p, true
		}
	}
	return Property{}, false
}

func (t *Table) ByBedrooms(n int) (Property, bool) {
	for _, p := range t.items {
		if p.Bedrooms == n && p.Bedrooms > 0 {
			return p, true
		}
	}
	return Property{}, false
}

// NearBedrooms finds a listing within one bedroom of the requested
// count. Used when there is no exact match.
func (t *Table) NearBedrooms(n int) (Property, bool) {
	for _, p := range t.items {
		if p.Bedrooms == 0 {
			continue
		}
		diff := p.Bedrooms - n
		if diff >= -1 && diff <= 1 {
			return p, true
		}
	}
	return Property{}, false
}

// BestWithinBudget filters listings priced at or below 1.5x the budget
// and returns the priciest match. The upsell bias is deliberate: the
// agent always leads with the strongest listing the buyer can stretch to.
func (t *Table) BestWithinBudget(budget int64) (Property, bool) {
	ceiling := budget + budget/2
	var best Property
	found := false
	for _, p := range t.items {
		if p.Price <= ceiling && (!found || p.Price > best.Price) {
			best = p
			found = true
		}
	}
	return best, found
}

func (t *Table) Land() (Property, bool) {
	for _, p := range t.items {
		if p.Type == TypeLand {
			return p, true
		}
	}
	return Property{}, false
}

func (t *Table) CheapestLand() (Property, bool) {
	var best Property
	found := false
	for _, p := range t.items {
		if p.Type != TypeLand {
			continue
		}
		if !found || p.Price < best.Price {
			best = p
			found = true
		}
	}
	return best, found
}

func (t *Table) nonLand() []Property {
	out := make([]Property, 0, len(t.items))
	for _, p := range t.items {
		if p.Type != TypeLand {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) FirstNonLand() (Property, bool) {
	for _, p := range t.items {
		if p.Type != TypeLand {
			return p, true
		}
	}
	return Property{}, false
}

func (t *Table) Random(rng *rand.Rand) (Property, bool) {
	if len(t.items) == 0 {
		return Property{}, false
	}
	return t.items[rng.Intn(len(t.items))], true
}

func (t *Table) RandomNonLand(rng *rand.Rand) (Property, bool) {
	candidates := t.nonLand()
	if len(candidates) == 0 {
		return Property{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// PriceRange reports the cheapest and priciest listings on the books.
func (t *Table) PriceRange() (min int64, max int64, ok bool) {
	if len(t.items) == 0 {
		return 0, 0, false
	}
	min, max = t.items[0].Price, t.items[0].Price
	for _, p := range t.items[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, true
}
