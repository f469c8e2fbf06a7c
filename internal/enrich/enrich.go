// Package enrich derives trip metadata (highlights, tags, difficulty and an
// estimated budget) from a trip's raw fields. All functions are pure and total.
package enrich

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const (
	maxHighlights = 4
	maxTags       = 6
)

// Enrich returns a copy of t with Highlights, Tags, Difficulty and
// EstimatedBudget filled in from its other fields.
func Enrich(t domain.Trip) domain.Trip {
	t.Highlights = Highlights(t.Itinerary)
	t.Tags = Tags(t.Destination, t.Interests, t.Budget, t.Travelers)
	t.Difficulty = Difficulty(t.Days, t.Interests)
	t.EstimatedBudget = EstimatedBudget(t.Destination, t.Days, t.Budget)
	return t
}

// ---- highlights ------------------------------------------------------------

var (
	highlightBullet = regexp.MustCompile(`^[-•*]\s*`)
	// highlightVerbs are matched case-sensitively, so "Visit" at the start of a
	// sentence does not qualify while "visit" mid-sentence does.
	highlightVerbs = []string{"visit", "explore", "experience"}
)

// Highlights returns up to four itinerary lines that mention visiting,
// exploring or experiencing something, with bullet markers removed.
// Only lines whose cleaned length is between 11 and 99 characters qualify.
func Highlights(itinerary string) []string {
	out := []string{}
	for _, line := range strings.Split(itinerary, "\n") {
		if !containsAny(line, highlightVerbs) {
			continue
		}
		cleaned := strings.TrimSpace(highlightBullet.ReplaceAllString(strings.TrimSpace(line), ""))
		if n := len([]rune(cleaned)); n > 10 && n < 100 {
			out = append(out, cleaned)
			if len(out) == maxHighlights {
				break
			}
		}
	}
	return out
}

// ---- tags ------------------------------------------------------------------

// destinationTagRules are mutually exclusive; the first match wins.
var destinationTagRules = []struct {
	keywords []string
	tags     []string
}{
	{[]string{"japan", "tokyo"}, []string{"Asia", "Culture", "Technology"}},
	{[]string{"paris", "france"}, []string{"Europe", "Romance", "Art"}},
	{[]string{"new york"}, []string{"Urban", "Shopping", "Entertainment"}},
}

// interestTagRules are checked independently against every interest word.
var interestTagRules = []struct {
	trigger string
	tag     string
}{
	{"food", "Culinary"},
	{"history", "Historical"},
	{"nature", "Nature"},
	{"adventure", "Adventure"},
	{"art", "Art & Culture"},
}

var budgetTags = map[domain.BudgetTier][]string{
	domain.BudgetLow:      {"Budget-Friendly", "Backpacker"},
	domain.BudgetModerate: {"Mid-Range", "Comfortable"},
	domain.BudgetHigh:     {"Luxury", "Premium"},
	domain.BudgetVeryHigh: {"Ultra-Luxury", "Exclusive"},
}

var travelerTags = map[domain.TravelerType][]string{
	domain.TravelerSingle: {"Solo Travel", "Independent"},
	domain.TravelerCouple: {"Romantic", "Couples"},
	domain.TravelerFamily: {"Family-Friendly", "Kids"},
}

var interestSeparators = regexp.MustCompile(`[,\s]+`)

// Tags returns up to six deduplicated labels in generation order:
// destination tags, then interest tags, then budget tags, then traveler tags.
// Unknown or empty budget and traveler values contribute nothing.
func Tags(destination, interests string, budget domain.BudgetTier, travelers domain.TravelerType) []string {
	var tags []string

	dest := strings.ToLower(destination)
	for _, rule := range destinationTagRules {
		if containsAny(dest, rule.keywords) {
			tags = append(tags, rule.tags...)
			break
		}
	}

	for _, word := range interestSeparators.Split(strings.ToLower(interests), -1) {
		for _, rule := range interestTagRules {
			if strings.Contains(word, rule.trigger) {
				tags = append(tags, rule.tag)
			}
		}
	}

	tags = append(tags, budgetTags[budget]...)
	tags = append(tags, travelerTags[travelers]...)

	return firstUnique(tags, maxTags)
}

// firstUnique keeps the first occurrence of each value, stopping at limit.
func firstUnique(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

// ---- difficulty ------------------------------------------------------------

var adventureKeywords = []string{"hiking", "climbing", "adventure", "extreme", "trekking"}

// Difficulty rates a trip. Adventure keywords in the interests take priority
// over the day-count thresholds.
func Difficulty(days int, interests string) domain.Difficulty {
	switch {
	case containsAny(strings.ToLower(interests), adventureKeywords) || days > 14:
		return domain.DifficultyChallenging
	case days > 7:
		return domain.DifficultyModerate
	default:
		return domain.DifficultyEasy
	}
}

// ---- budget ----------------------------------------------------------------

const defaultDailyRate = 100.0

// dailyRateRules are checked in order; the first match wins.
var dailyRateRules = []struct {
	keywords []string
	rate     float64
}{
	{[]string{"japan", "switzerland", "norway"}, 200},
	{[]string{"thailand", "vietnam", "india"}, 50},
}

var budgetFactors = map[domain.BudgetTier]float64{
	domain.BudgetLow:      0.5,
	domain.BudgetModerate: 1,
	domain.BudgetHigh:     2,
	domain.BudgetVeryHigh: 4,
}

var printer = message.NewPrinter(language.English)

// EstimatedBudget returns a "$low - $high" range with thousands separators.
// An empty or unknown budget tier scales the daily rate by 1.
func EstimatedBudget(destination string, days int, budget domain.BudgetTier) string {
	rate := defaultDailyRate
	dest := strings.ToLower(destination)
	for _, rule := range dailyRateRules {
		if containsAny(dest, rule.keywords) {
			rate = rule.rate
			break
		}
	}
	if f, ok := budgetFactors[budget]; ok {
		rate *= f
	}

	total := rate * float64(days)
	low := int64(math.Round(total))
	// The upper bound is 1.3x; scaling by 13/10 keeps halves exact before rounding.
	high := int64(math.Round(total * 13 / 10))
	return printer.Sprintf("$%d - $%d", low, high)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
