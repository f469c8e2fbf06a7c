// Package handler: export.go implements GET /export.
// Returns every saved trip of the caller as a flat table.
// Supports ?format=csv (CSV) or the default, JSON.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "title", "destination", "days", "month", "interests",
	"budget", "travelers", "difficulty", "estimated_budget", "created_at",
	"tags", "highlights",
}

// exportRow is the JSON form of domain.ExportRow.
type exportRow struct {
	TripID          string    `json:"tripId"`
	Title           string    `json:"title"`
	Destination     string    `json:"destination"`
	Days            int       `json:"days"`
	Month           string    `json:"month"`
	Interests       string    `json:"interests"`
	Budget          string    `json:"budget,omitempty"`
	Travelers       string    `json:"travelers,omitempty"`
	Difficulty      string    `json:"difficulty"`
	EstimatedBudget string    `json:"estimatedBudget"`
	CreatedAt       time.Time `json:"createdAt"`
	Tags            []string  `json:"tags"`
	Highlights      []string  `json:"highlights"`
}

// GetExport implements GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format parameter")
		return
	}
	wantCSV := false
	if format != nil {
		switch strings.ToLower(*format) {
		case "csv":
			wantCSV = true
		case "json":
		default:
			writeError(w, http.StatusBadRequest, "format must be csv or json")
			return
		}
	}

	rows, err := s.trips.Export(r.Context(), mustOwner(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if wantCSV {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV. Tags and highlights within a row are
// pipe-separated ("|") to keep each trip on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(toCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func toExportRow(r domain.ExportRow) exportRow {
	return exportRow{
		TripID:          r.TripID,
		Title:           r.Title,
		Destination:     r.Destination,
		Days:            r.Days,
		Month:           r.Month,
		Interests:       r.Interests,
		Budget:          r.Budget,
		Travelers:       r.Travelers,
		Difficulty:      r.Difficulty,
		EstimatedBudget: r.EstimatedBudget,
		CreatedAt:       r.CreatedAt,
		Tags:            nonNil(r.Tags),
		Highlights:      nonNil(r.Highlights),
	}
}

// toCSVRecord encodes a domain.ExportRow as a flat string slice.
func toCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.Title,
		r.Destination,
		strconv.Itoa(r.Days),
		r.Month,
		r.Interests,
		r.Budget,
		r.Travelers,
		r.Difficulty,
		r.EstimatedBudget,
		r.CreatedAt.UTC().Format(time.RFC3339),
		strings.Join(r.Tags, "|"),
		strings.Join(r.Highlights, "|"),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
