package assistant

import (
	"fmt"
	"strings"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
)

// WelcomeText opens every conversation and answers any greeting.
const WelcomeText = "Welcome to Abisam Properties. I'm your personal sales consultant for the Abeokuta market. Are you looking to Buy, Rent, or Sell today?"

const noStockText = "Let me check with our head agent for fresh stock in that range. Meanwhile, tell me your preferred area in Abeokuta and I'll line something up."

func bookingConfirmText(p catalog.Property) string {
	return fmt.Sprintf("Excellent choice. %s will not stay on the market for long, so let's lock in your inspection right away.", p.Title)
}

const differentCriteriaText = "No problem at all. Tell me what would suit you better. A different area, more rooms, or a tighter budget?"

func pickBetweenText(a, b catalog.Property) string {
	return fmt.Sprintf("Great, let's get you settled quickly. Are you leaning towards the %s at %s, or the %s at %s?",
		a.Title, a.PriceDisplay(), b.Title, b.PriceDisplay())
}

func softCloseText(p catalog.Property) string {
	return fmt.Sprintf("%s is one of our finest. %s, all papers verified and no omonile issues. Shall I schedule an inspection for you?",
		p.Title, strings.Join(p.Documents, " and "))
}

func describeText(p catalog.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s sits in %s and goes for %s. %s", p.Title, p.Location, p.PriceDisplay(), p.Description)
	if p.Bedrooms > 0 {
		fmt.Fprintf(&b, " It offers %d bedrooms.", p.Bedrooms)
	}
	fmt.Fprintf(&b, " Documents: %s. Ready to book an inspection?", strings.Join(p.Documents, ", "))
	return b.String()
}

func bedroomMatchText(n int, p catalog.Property) string {
	return fmt.Sprintf("We have exactly what you need. %s in %s, %d bedrooms, going for %s. Want to inspect it?",
		p.Title, p.Location, p.Bedrooms, p.PriceDisplay())
}

func bedroomNearText(n int, p catalog.Property) string {
	return fmt.Sprintf("Closest to a %d-bedroom right now is %s in %s with %d bedrooms at %s. Worth a look?",
		n, p.Title, p.Location, p.Bedrooms, p.PriceDisplay())
}

func bedroomFallbackText(n int, p catalog.Property) string {
	return fmt.Sprintf("We don't hold a %d-bedroom option at the moment, but %s in %s at %s is moving fast. Should I tell you more?",
		n, p.Title, p.Location, p.PriceDisplay())
}

func budgetMatchText(budget int64, p catalog.Property) string {
	return fmt.Sprintf("With a budget around ₦%s, I'd push for %s at %s. %s Should we schedule a viewing?",
		formatAmount(budget), p.Title, p.PriceDisplay(), p.Description)
}

func budgetLandText(p catalog.Property) string {
	return fmt.Sprintf("Within that range your strongest play is land. %s at %s is a solid hold that only appreciates. Interested?",
		p.Title, p.PriceDisplay())
}

const budgetNothingText = "Nothing on our books fits that figure today, but inventory moves weekly. Leave it with me and tell me your preferred area."

func priceText(p catalog.Property) string {
	return fmt.Sprintf("%s goes for %s with %s in place. Want to proceed with an inspection?",
		p.Title, p.PriceDisplay(), strings.Join(p.Documents, " and "))
}

func locationText(p catalog.Property) string {
	return fmt.Sprintf("%s sits in %s, one of the fastest-moving corridors in Abeokuta. Shall I book you an inspection?",
		p.Title, p.Location)
}

func genericRangeText(min, max int64) string {
	return fmt.Sprintf("Our listings run from ₦%s to ₦%s across Camp, Adigbe, Obantoko, Oke-Mosan, Kuto and Lantoro. Which area works for you?",
		formatAmount(min), formatAmount(max))
}

func browseText(p catalog.Property) string {
	return fmt.Sprintf("Take a look at %s in %s, going for %s. %s Want the full details or should we book an inspection?",
		p.Title, p.Location, p.PriceDisplay(), p.Description)
}

func landText(p catalog.Property) string {
	return fmt.Sprintf("For land, %s is the one. %s and it carries %s. Dry, surveyed and omonile-free. Should I arrange a site visit?",
		p.Title, p.PriceDisplay(), strings.Join(p.Documents, " and "))
}

func fallbackText(p catalog.Property) string {
	return fmt.Sprintf("Let me point you to something special. %s in %s at %s. Would you like the full details, or should we book an inspection straight away?",
		p.Title, p.Location, p.PriceDisplay())
}

const emptyBookText = "Tell me which of our listings caught your eye and I'll set up the inspection immediately."

func formatAmount(n int64) string {
	return catalog.FormatAmount(n)
}
