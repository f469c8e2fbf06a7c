package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// createTripRequest is the POST /trips body: a generated plan plus an optional title.
type createTripRequest struct {
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	Days        flexDays `json:"days"`
	Month       string   `json:"month"`
	Interests   string   `json:"interests"`
	Budget      string   `json:"budget"`
	Travelers   string   `json:"travelers"`
	Itinerary   string   `json:"itinerary"`
}

// tripResponse is the JSON form of a saved trip.
type tripResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Destination     string    `json:"destination"`
	Days            int       `json:"days"`
	Month           string    `json:"month"`
	Interests       string    `json:"interests"`
	Budget          string    `json:"budget,omitempty"`
	Travelers       string    `json:"travelers,omitempty"`
	Itinerary       string    `json:"itinerary"`
	Highlights      []string  `json:"highlights"`
	Tags            []string  `json:"tags"`
	Difficulty      string    `json:"difficulty"`
	EstimatedBudget string    `json:"estimatedBudget"`
	CreatedAt       time.Time `json:"createdAt"`
}

type tripListResponse struct {
	Data []tripResponse `json:"data"`
}

type tripDetailResponse struct {
	Trip tripResponse  `json:"trip"`
	Days []dayResponse `json:"days"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	owner := mustOwner(r)

	var body createTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	saved, err := s.trips.Save(r.Context(), owner, domain.Trip{
		Title:       body.Title,
		Destination: body.Destination,
		Days:        body.Days.value,
		Month:       strings.TrimSpace(body.Month),
		Interests:   strings.TrimSpace(body.Interests),
		Budget:      domain.BudgetTier(strings.TrimSpace(body.Budget)),
		Travelers:   domain.TravelerType(strings.TrimSpace(body.Travelers)),
		Itinerary:   body.Itinerary,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(saved))
}

// ListTrips handles GET /trips.
// Supports ?q= (destination or title substring) and ?filter=all|recent|long|short.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var q, window *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid q parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "filter", r.URL.Query(), &window); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter parameter")
		return
	}

	filter := domain.TripFilter{}
	if q != nil {
		filter.Query = *q
	}
	if window != nil {
		filter.Window = domain.ListWindow(strings.ToLower(*window))
	}

	trips, err := s.trips.List(r.Context(), mustOwner(r), filter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeError(w, http.StatusInternalServerError, msgStoreFailed)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{Data: data})
}

// GetTrip handles GET /trips/{id}. The response carries the parsed day view
// next to the stored trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := bindTripID(w, r)
	if !ok {
		return
	}

	trip, days, err := s.trips.Get(r.Context(), mustOwner(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripDetailResponse{Trip: tripToResponse(trip), Days: daysToResponse(days)})
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := bindTripID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), mustOwner(r), id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportTrip handles GET /trips/{id}/export: a plain-text download of the
// trip summary and its itinerary.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := bindTripID(w, r)
	if !ok {
		return
	}

	trip, _, err := s.trips.Get(r.Context(), mustOwner(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%ddays-itinerary.txt", trip.Destination, trip.Days)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tripText(trip)))
}

func tripText(t domain.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Title)
	fmt.Fprintf(&b, "Travel Month: %s\n", t.Month)
	fmt.Fprintf(&b, "Interests: %s\n", t.Interests)
	b.WriteString("\nDETAILED ITINERARY:\n")
	b.WriteString(strings.TrimSpace(t.Itinerary))
	b.WriteString("\n\nGenerated by AI Trip Planner\n")
	return b.String()
}

// bindTripID parses the {id} path parameter, answering 400 when it is not a UUID.
func bindTripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip id")
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError maps a TripService read/delete failure.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeError(w, http.StatusInternalServerError, msgStoreFailed)
}

// mustOwner returns the caller's uid. Only called behind the auth middleware.
func mustOwner(r *http.Request) string {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		panic("handler: route registered without auth middleware")
	}
	return id.UID
}

// tripToResponse converts a domain.Trip into its JSON form.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:              t.ID,
		Title:           t.Title,
		Destination:     t.Destination,
		Days:            t.Days,
		Month:           t.Month,
		Interests:       t.Interests,
		Budget:          string(t.Budget),
		Travelers:       string(t.Travelers),
		Itinerary:       t.Itinerary,
		Highlights:      nonNil(t.Highlights),
		Tags:            nonNil(t.Tags),
		Difficulty:      string(t.Difficulty),
		EstimatedBudget: t.EstimatedBudget,
		CreatedAt:       t.CreatedAt,
	}
}
