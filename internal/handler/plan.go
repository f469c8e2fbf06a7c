package handler

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// flexDays accepts the day count as a JSON number or a numeric string.
// null, "" and an absent field all leave it unset. Anything else that is not
// a whole number decodes to domain.DaysNotWhole for validation to reject.
type flexDays struct {
	value int
}

func (d *flexDays) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		d.value = domain.DaysNotWhole
		return nil
	}
	d.value = int(f)
	return nil
}

// planRequest is the POST /plan-trip body.
type planRequest struct {
	Destination string   `json:"destination"`
	Days        flexDays `json:"days"`
	Month       string   `json:"month"`
	Interests   string   `json:"interests"`
	Budget      string   `json:"budget"`
	Travelers   string   `json:"travelers"`
}

// planResponse echoes the request fields alongside the generated text.
type planResponse struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Month       string `json:"month"`
	Interests   string `json:"interests"`
	Budget      string `json:"budget"`
	Travelers   string `json:"travelers"`
	Itinerary   string `json:"itinerary"`
}

// PlanTrip handles POST /plan-trip.
// The credential check runs before the body is read, so a misconfigured
// deployment answers every request the same way.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.Ready(); err != nil {
		s.logger.ErrorContext(r.Context(), "text generation is not configured", "error", err)
		writeError(w, http.StatusInternalServerError, msgConfiguration)
		return
	}

	var body planRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	plan, err := s.plans.Plan(r.Context(), domain.TripRequest{
		Destination: strings.TrimSpace(body.Destination),
		Days:        body.Days.value,
		Month:       strings.TrimSpace(body.Month),
		Interests:   strings.TrimSpace(body.Interests),
		Budget:      domain.BudgetTier(strings.TrimSpace(body.Budget)),
		Travelers:   domain.TravelerType(strings.TrimSpace(body.Travelers)),
	})
	if err != nil {
		s.writePlanError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Destination: plan.Destination,
		Days:        plan.Days,
		Month:       plan.Month,
		Interests:   plan.Interests,
		Budget:      string(plan.Budget),
		Travelers:   string(plan.Travelers),
		Itinerary:   plan.Itinerary,
	})
}

func (s *Server) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, msgConfiguration)
	case errors.Is(err, domain.ErrCredential):
		writeError(w, http.StatusInternalServerError, msgCredential)
	default:
		s.logger.ErrorContext(r.Context(), "plan-trip failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgGeneration)
	}
}

// testAPIResponse is the GET /test-api body for both outcomes.
type testAPIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TestAPI handles GET /test-api: one short generation call that proves the
// credential works.
func (s *Server) TestAPI(w http.ResponseWriter, r *http.Request) {
	text, err := s.plans.Ping(r.Context())
	stamp := s.now().UTC().Format(time.RFC3339)
	if err != nil {
		msg := "Failed to reach the text-generation provider."
		switch {
		case errors.Is(err, domain.ErrConfiguration):
			msg = msgConfiguration
		case errors.Is(err, domain.ErrCredential):
			msg = msgCredential
		}
		writeJSON(w, http.StatusInternalServerError, testAPIResponse{Error: msg, Timestamp: stamp})
		return
	}

	writeJSON(w, http.StatusOK, testAPIResponse{
		Success:   true,
		Message:   "API key is working correctly!",
		Response:  text,
		Timestamp: stamp,
	})
}
