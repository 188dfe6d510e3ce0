package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/genai"
	"github.com/Hopetizzy/Abisam-properties/internal/leads"
)

func TestNewBuilderKeepsDigitsOnly(t *testing.T) {
	b := NewBuilder("+234 812 345-6789")
	link := b.InquiryLink(leads.Lead{})
	if !strings.HasPrefix(link, "https://wa.me/2348123456789?text=") {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestInquiryLink(t *testing.T) {
	b := NewBuilder("2348123456789")
	link := b.InquiryLink(leads.Lead{
		Name:     "Tunde Bakare",
		Phone:    "08012345678",
		Property: "Modern 3-Bedroom Flat in Oke-Mosan",
		Date:     "Monday, Mar 9",
	})

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{"Tunde Bakare", "08012345678", "Modern 3-Bedroom Flat in Oke-Mosan", "Monday, Mar 9", "confirm my appointment"} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q: %q", want, text)
		}
	}
}

func TestListingLink(t *testing.T) {
	b := NewBuilder("2348123456789")
	link := b.ListingLink(catalog.Property{Title: "4-Bedroom Duplex in Adigbe", Location: catalog.LocationAdigbe})

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	text := u.Query().Get("text")
	if !strings.Contains(text, `"4-Bedroom Duplex in Adigbe"`) || !strings.Contains(text, "Adigbe") {
		t.Fatalf("message missing listing details: %q", text)
	}
}

func TestProfileLinkDefaults(t *testing.T) {
	b := NewBuilder("2348123456789")
	link := b.ProfileLink(genai.LeadSummary{Summary: "Browsing, no firm intent yet."})

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{"*Goal:* Unknown", "*Location:* Abeokuta", "*Budget:* N/A", "*Type:* Residential", "Browsing, no firm intent yet."} {
		if !strings.Contains(text, want) {
			t.Fatalf("profile missing %q: %q", want, text)
		}
	}
}
