package catalog

import "strconv"

type Location string

const (
	LocationCamp     Location = "Camp"
	LocationAdigbe   Location = "Adigbe"
	LocationObantoko Location = "Obantoko"
	LocationOkeMosan Location = "Oke-Mosan"
	LocationKuto     Location = "Kuto"
	LocationLantoro  Location = "Lantoro"
)

type Type string

const (
	TypeSelfContain Type = "Self-contain"
	TypeFlat        Type = "Flat"
	TypeBungalow    Type = "Bungalow"
	TypeDuplex      Type = "Duplex"
	TypeLand        Type = "Land"
)

var validLocations = map[Location]struct{}{
	LocationCamp:     {},
	LocationAdigbe:   {},
	LocationObantoko: {},
	LocationOkeMosan: {},
	LocationKuto:     {},
	LocationLantoro:  {},
}

var validTypes = map[Type]struct{}{
	TypeSelfContain: {},
	TypeFlat:        {},
	TypeBungalow:    {},
	TypeDuplex:      {},
	TypeLand:        {},
}

func IsValidLocation(value string) bool {
	_, ok := validLocations[Location(value)]
	return ok
}

func IsValidType(value string) bool {
	_, ok := validTypes[Type(value)]
	return ok
}

// Property is a catalog listing. The catalog is reference data: loaded
// once, never mutated in place (admin edits swap the whole table).
type Property struct {
	ID          string   `bson:"_id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Location    Location `bson:"location" json:"location"`
	Price       int64    `bson:"price" json:"price"`
	Type        Type     `bson:"type" json:"type"`
	Documents   []string `bson:"documents" json:"documents"`
	Description string   `bson:"description" json:"description"`
	Image       string   `bson:"image" json:"image"`
	Bedrooms    int      `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms   int      `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
}

// PriceDisplay renders the naira amount with thousands separators,
// e.g. 1200000 -> "₦1,200,000".
func (p Property) PriceDisplay() string {
	return "₦" + FormatAmount(p.Price)
}

func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
