package domain

import "time"

// ExportRow is a single row in the full-data export: one row per saved trip.
//
// Tags and Highlights keep their stored order.
// Callers that need a joined string (e.g. CSV) should join with "|".
type ExportRow struct {
	TripID          string
	Title           string
	Destination     string
	Days            int
	Month           string
	Interests       string
	Budget          string
	Travelers       string
	Difficulty      string
	EstimatedBudget string
	CreatedAt       time.Time

	Tags       []string
	Highlights []string
}
