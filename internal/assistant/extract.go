package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

var bedroomRe = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(?:bed|room|br)`)

// ExtractBedrooms pulls a bedroom count out of phrases like
// "3 bedroom", "4-bed" or "2br". Evaluated before budget extraction so
// "3 bedroom" is never misread as a 3 naira budget.
func ExtractBedrooms(text string) (int, bool) {
	m := bedroomRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

var markedAmountRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(million|naira|k|m)\b`)
var nairaSignRe = regexp.MustCompile(`₦\s*(\d[\d,]*(?:\.\d+)?)`)
var bareNumberRe = regexp.MustCompile(`\d[\d,]*`)

// ExtractBudget resolves a naira amount from free text. A currency
// marker (k, m, million, naira, ₦) sets the multiplier; without one, a
// bare number only counts when it exceeds 1000, which keeps bedroom
// counts and plot counts from being read as money.
func ExtractBudget(text string) (int64, bool) {
	if m := markedAmountRe.FindStringSubmatch(text); m != nil {
		multiplier := int64(1)
		switch strings.ToLower(m[2]) {
		case "k":
			multiplier = 1_000
		case "m", "million":
			multiplier = 1_000_000
		}
		if amount, ok := parseAmount(m[1], multiplier); ok {
			return amount, true
		}
	}

	if m := nairaSignRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1], 1); ok {
			return amount, true
		}
	}

	for _, raw := range bareNumberRe.FindAllString(text, -1) {
		amount, ok := parseAmount(raw, 1)
		if ok && amount > 1000 {
			return amount, true
		}
	}

	return 0, false
}

func parseAmount(raw string, multiplier int64) (int64, bool) {
	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return int64(value * float64(multiplier)), true
}
