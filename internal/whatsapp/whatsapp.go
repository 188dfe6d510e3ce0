// Package whatsapp builds wa.me deep links that hand a visitor over to
// the agency's WhatsApp line with a pre-filled message.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/genai"
	"github.com/Hopetizzy/Abisam-properties/internal/leads"
)

type Builder struct {
	phone string
}

// NewBuilder keeps only the digits of the agency phone number, the form
// wa.me expects.
func NewBuilder(phone string) *Builder {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return &Builder{phone: digits.String()}
}

func (b *Builder) link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.phone, url.QueryEscape(message))
}

// InquiryLink pre-fills the booked-inspection confirmation message.
func (b *Builder) InquiryLink(lead leads.Lead) string {
	message := fmt.Sprintf("Hello Abisam Properties,\n\nI am interested in the *%s*.\nI would like to schedule an inspection for *%s*.\n\nMy Details:\nName: %s\nPhone: %s\n\nPlease confirm my appointment.",
		lead.Property, lead.Date, lead.Name, lead.Phone)
	return b.link(message)
}

// ListingLink pre-fills a more-details request about one listing.
func (b *Builder) ListingLink(p catalog.Property) string {
	message := fmt.Sprintf("Hello Abisam Properties, I am interested in %q in %s. Please provide more details and the next steps for inspection.",
		p.Title, p.Location)
	return b.link(message)
}

// ProfileLink pre-fills the mid-chat handoff with a profile of what the
// visitor is after, so the agent picks up where the assistant left off.
func (b *Builder) ProfileLink(summary genai.LeadSummary) string {
	intent := orDefault(summary.Intent, "Unknown")
	location := orDefault(summary.Location, "Abeokuta")
	budget := orDefault(summary.Budget, "N/A")
	propertyType := orDefault(summary.PropertyType, "Residential")

	message := fmt.Sprintf("*ABISAM AI LEAD PROFILE*\n---------------------------\n*Goal:* %s\n*Location:* %s\n*Budget:* %s\n*Type:* %s\n\n*Summary:* %s\n\n_Generated via Abisam Zero-Latency Ecosystem_",
		intent, location, budget, propertyType, summary.Summary)
	return b.link(message)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
