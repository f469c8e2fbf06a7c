package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

type dayResponse struct {
	Day        int                `json:"day"`
	Title      string             `json:"title"`
	Activities []activityResponse `json:"activities"`
}

type activityResponse struct {
	Time        string `json:"time,omitempty"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type parseRequest struct {
	Itinerary string `json:"itinerary"`
}

type parseResponse struct {
	Days []dayResponse `json:"days"`
}

// ParseItinerary handles POST /itinerary/parse, exposing the day parser for
// plans that have not been saved yet. Unstructured text yields no days.
func (s *Server) ParseItinerary(w http.ResponseWriter, r *http.Request) {
	var body parseRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Days: daysToResponse(itinerary.Parse(body.Itinerary))})
}

func daysToResponse(days []domain.DayEntry) []dayResponse {
	out := make([]dayResponse, len(days))
	for i, d := range days {
		acts := make([]activityResponse, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = activityResponse{Time: a.Time, Description: a.Description, Category: string(a.Category)}
		}
		out[i] = dayResponse{Day: d.Number, Title: d.Title, Activities: acts}
	}
	return out
}
