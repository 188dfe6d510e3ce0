package catalog

// Defaults is the built-in Abeokuta inventory. The API serves whatever
// is in Mongo, but an empty collection falls back to these four
// listings so the assistant always has stock to sell.
func Defaults() []Property {
	return []Property{
		{
			ID:          "1",
			Title:       "Modern 3-Bedroom Flat in Oke-Mosan",
			Location:    LocationOkeMosan,
			Price:       1200000,
			Type:        TypeFlat,
			Documents:   []string{"C of O", "Survey"},
			Description: "Luxury flat with proximity to government offices, 24/7 security, tiled floors, and spacious compound.",
			Image:       "https://images.unsplash.com/photo-1570129477492-45c003edd2be?auto=format&fit=crop&w=800&q=80",
			Bedrooms:    3,
			Bathrooms:   3,
		},
		{
			ID:          "2",
			Title:       "Cosy Self-Contain near FUNAAB",
			Location:    LocationCamp,
			Price:       150000,
			Type:        TypeSelfContain,
			Documents:   []string{"Survey"},
			Description: "Student-friendly self-contain with reliable water supply and prepaid meter. Walking distance to Camp junction.",
			Image:       "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:          "3",
			Title:       "4-Bedroom Duplex in Adigbe",
			Location:    LocationAdigbe,
			Price:       45000000,
			Type:        TypeDuplex,
			Documents:   []string{"C of O", "Registered Survey", "Deed of Assignment"},
			Description: "Executive duplex with penthouse, modern fittings, fenced and gated with electric wire.",
			Image:       "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?auto=format&fit=crop&w=800&q=80",
			Bedrooms:    4,
			Bathrooms:   4,
		},
		{
			ID:          "4",
			Title:       "Prime 2 Plots of Land at Obantoko",
			Location:    LocationObantoko,
			Price:       8000000,
			Type:        TypeLand,
			Documents:   []string{"C of O", "Approved Layout"},
			Description: "Flat dry land in a fast-developing neighborhood. No omonile issues guaranteed.",
			Image:       "https://images.unsplash.com/photo-1500382017468-9049fed747ef?auto=format&fit=crop&w=800&q=80",
		},
	}
}
