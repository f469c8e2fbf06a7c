// Package itinerary turns the model's free-text itinerary into day and activity records.
// Parsing is tolerant: malformed input yields fewer or emptier days, never an error.
package itinerary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

var (
	// dayHeader is unanchored so markdown-decorated headers like "**Day 2: Kyoto**" still match.
	dayHeader  = regexp.MustCompile(`Day (\d+)[:.]?\s*(.*)`)
	bullet     = regexp.MustCompile(`^[-•*]\s*`)
	timePrefix = regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}|\d{1,2}\s*[ap]m)\s*[-:]?\s*(.*)`)
)

// categoryRules are checked in order; the first rule with a matching keyword wins.
var categoryRules = []struct {
	keywords []string
	category domain.Category
}{
	{[]string{"restaurant", "food", "eat"}, domain.CategoryFood},
	{[]string{"museum", "temple", "palace"}, domain.CategoryCulture},
	{[]string{"park", "garden", "nature"}, domain.CategoryNature},
	{[]string{"shopping", "market"}, domain.CategoryShopping},
}

// Parse splits text into days. A result of length zero means no day header
// was found and the caller should show the raw text instead.
func Parse(text string) []domain.DayEntry {
	days := []domain.DayEntry{}
	var current *domain.DayEntry

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := dayHeader.FindStringSubmatch(line); m != nil {
			// m[1] is all digits, so Atoi can only fail on overflow, where it
			// returns the saturated value. Oversized numbers still open a day.
			n, _ := strconv.Atoi(m[1])
			if current != nil {
				days = append(days, *current)
			}
			title := strings.TrimSpace(m[2])
			if title == "" {
				title = "Day " + m[1]
			}
			current = &domain.DayEntry{Number: n, Title: title, Activities: []domain.ActivityEntry{}}
			continue
		}

		if current == nil {
			continue
		}
		if activity, ok := parseActivity(line); ok {
			current.Activities = append(current.Activities, activity)
		}
	}

	if current != nil {
		days = append(days, *current)
	}
	return days
}

// parseActivity cleans a single non-header line. ok is false when nothing
// remains after the bullet marker is removed.
func parseActivity(line string) (domain.ActivityEntry, bool) {
	cleaned := strings.TrimSpace(bullet.ReplaceAllString(line, ""))
	if cleaned == "" {
		return domain.ActivityEntry{}, false
	}

	a := domain.ActivityEntry{Description: cleaned}
	if m := timePrefix.FindStringSubmatch(cleaned); m != nil {
		a.Time = m[1]
		a.Description = m[2]
	}
	a.Category = Categorize(a.Description)
	return a, true
}

// Categorize infers an activity category from its description by
// case-insensitive keyword match.
func Categorize(description string) domain.Category {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryGeneral
}
