// Package prompt assembles the natural-language prompts sent to the
// text-generation provider. Everything here is pure and deterministic.
package prompt

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Token ceilings for the two prompts this service sends.
const (
	PlanMaxTokens         = 2000
	ConnectivityMaxTokens = 50
)

// Connectivity is the fixed prompt used to check that the credential works.
const Connectivity = "Say 'Hello! Your Google AI API is working correctly.' in a friendly way."

var budgetContext = map[domain.BudgetTier]string{
	domain.BudgetLow:      "budget-friendly options, hostels, street food, free attractions",
	domain.BudgetModerate: "mid-range hotels, local restaurants, mix of paid and free activities",
	domain.BudgetHigh:     "luxury hotels, fine dining, premium experiences, private tours",
	domain.BudgetVeryHigh: "ultra-luxury resorts, Michelin-starred restaurants, exclusive experiences, private jets/helicopters",
}

var travelerContext = map[domain.TravelerType]string{
	domain.TravelerSingle: "solo traveler experiences, safety tips, social opportunities, flexible scheduling",
	domain.TravelerCouple: "romantic experiences, couple activities, intimate dining, shared adventures",
	domain.TravelerFamily: "family-friendly activities, kid-safe options, educational experiences, group accommodations",
}

const planTemplate = `Plan a %[1]d-day trip to %[2]s in %[3]s for a %[4]s with a %[5]s budget, focused on %[6]s. 

Budget Level: %[5]s - Focus on %[7]s
Travel Style: %[4]s - Include %[8]s

Please provide a detailed day-by-day itinerary that includes:
- Specific places to visit with brief descriptions
- Recommended timing for each activity
- %[9]s
- Transportation tips appropriate for %[5]s budget
- Cultural insights and tips
- %[10]s
- Accommodation suggestions for %[5]s budget level

Format the response as a clear, well-structured itinerary that's easy to follow. Make it engaging and informative, tailored specifically for %[4]s with %[5]s budget preferences.`

// Build returns the itinerary prompt for req.
// req must already be validated; unknown tiers produce empty context phrases.
func Build(req domain.TripRequest) string {
	return fmt.Sprintf(planTemplate,
		req.Days,
		req.Destination,
		req.Month,
		req.Travelers,
		req.Budget,
		req.Interests,
		budgetContext[req.Budget],
		travelerContext[req.Travelers],
		foodLine(req.Budget),
		travelerLine(req.Travelers),
	)
}

func foodLine(b domain.BudgetTier) string {
	switch b {
	case domain.BudgetLow:
		return "Budget-friendly food options and free/cheap attractions"
	case domain.BudgetVeryHigh:
		return "Luxury dining and exclusive experiences"
	default:
		return "Local food recommendations and mix of activities"
	}
}

func travelerLine(t domain.TravelerType) string {
	switch t {
	case domain.TravelerFamily:
		return "Family-friendly activities and safety considerations"
	case domain.TravelerCouple:
		return "Romantic spots and couple experiences"
	default:
		return "Solo travel tips and social opportunities"
	}
}
