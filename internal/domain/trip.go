// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (prompt, itinerary, enrich,
// repo, service, handler) and depends only on uuid.
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTripDays is the upper bound accepted for a generated trip.
const MaxTripDays = 30

// DaysNotWhole marks a day count that was supplied but is not an integer.
// Decoders set it so validation can report the problem after missing fields.
const DaysNotWhole = math.MinInt

// BudgetTier drives both prompt phrasing and budget-estimate scaling.
type BudgetTier string

const (
	BudgetLow      BudgetTier = "low"
	BudgetModerate BudgetTier = "moderate"
	BudgetHigh     BudgetTier = "high"
	BudgetVeryHigh BudgetTier = "very-high"
)

// Valid reports whether b is one of the known tiers.
func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetLow, BudgetModerate, BudgetHigh, BudgetVeryHigh:
		return true
	}
	return false
}

// TravelerType drives prompt phrasing and tag generation.
type TravelerType string

const (
	TravelerSingle TravelerType = "single"
	TravelerCouple TravelerType = "couple"
	TravelerFamily TravelerType = "family"
)

// Valid reports whether t is one of the known traveler types.
func (t TravelerType) Valid() bool {
	switch t {
	case TravelerSingle, TravelerCouple, TravelerFamily:
		return true
	}
	return false
}

// Difficulty is the derived effort rating of a saved trip.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// TripRequest is the input to itinerary generation. All fields are required.
type TripRequest struct {
	Destination string
	Days        int
	Month       string
	Interests   string
	Budget      BudgetTier
	Travelers   TravelerType
}

// Validate checks that every field is present and every enumerated value is known.
// Missing fields yield ErrMissingFields; bad values yield a wrapped ErrValidation.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" || r.Days == 0 ||
		strings.TrimSpace(r.Month) == "" || strings.TrimSpace(r.Interests) == "" ||
		r.Budget == "" || r.Travelers == "" {
		return ErrMissingFields
	}
	if r.Days == DaysNotWhole {
		return ErrDaysNotWhole
	}
	if r.Days < 1 || r.Days > MaxTripDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrValidation, MaxTripDays)
	}
	if !ValidMonth(r.Month) {
		return fmt.Errorf("%w: month must be a full month name", ErrValidation)
	}
	if !r.Budget.Valid() {
		return fmt.Errorf("%w: budget must be one of low, moderate, high, very-high", ErrValidation)
	}
	if !r.Travelers.Valid() {
		return fmt.Errorf("%w: travelers must be one of single, couple, family", ErrValidation)
	}
	return nil
}

// ValidMonth reports whether s names one of the twelve months, ignoring case.
func ValidMonth(s string) bool {
	s = strings.TrimSpace(s)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) {
			return true
		}
	}
	return false
}

// TripPlan is the output of generation: the request fields plus the raw itinerary text.
// The itinerary is never rewritten; parsed views are derived from it.
type TripPlan struct {
	TripRequest
	Itinerary string
}

// Trip is a saved TripPlan enriched with derived metadata.
// Budget and Travelers may be empty on a saved trip; the enricher uses defaults.
type Trip struct {
	ID              uuid.UUID
	OwnerID         string
	Title           string
	Destination     string
	Days            int
	Month           string
	Interests       string
	Budget          BudgetTier
	Travelers       TravelerType
	Itinerary       string
	Highlights      []string
	Tags            []string
	Difficulty      Difficulty
	EstimatedBudget string
	CreatedAt       time.Time
}

// DefaultTitle returns the title used when a trip is saved without one.
func DefaultTitle(days int, destination string) string {
	return fmt.Sprintf("%d-Day Trip to %s", days, destination)
}

// ListWindow narrows a trip listing.
type ListWindow string

const (
	WindowAll    ListWindow = "all"
	WindowRecent ListWindow = "recent"
	WindowLong   ListWindow = "long"
	WindowShort  ListWindow = "short"
)

// RecentWindow is how far back WindowRecent reaches.
const RecentWindow = 30 * 24 * time.Hour

// LongTripDays is the day count above which a trip counts as long.
const LongTripDays = 7

// Valid reports whether w is a known listing window.
func (w ListWindow) Valid() bool {
	switch w {
	case WindowAll, WindowRecent, WindowLong, WindowShort:
		return true
	}
	return false
}

// TripFilter carries the listing options from the HTTP layer to the repo layer.
// Query matches destination or title, case-insensitively. Since is only
// consulted for WindowRecent and is filled in by the service.
type TripFilter struct {
	Query  string
	Window ListWindow
	Since  time.Time
}

// TripStats summarises a user's saved trips.
type TripStats struct {
	TotalTrips          int
	TotalDays           int
	FavoriteDestination string
}
