package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// User-facing messages for failures whose cause must stay server-side.
const (
	msgConfiguration = "API configuration error. Please contact support."
	msgCredential    = "API key configuration error. Please check your setup."
	msgGeneration    = "Failed to generate trip plan. Please try again."
	msgMissing       = "Missing required fields"
	msgNotFound      = "Trip not found"
	msgSaveFailed    = "Failed to save trip"
	msgStoreFailed   = "Failed to access saved trips"
	msgInvalidBody   = "Invalid request body"
	msgBodyTooLarge  = "Request body too large"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": message} with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads r's body into v. It answers the request itself and
// returns false when the body is oversized or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	default:
		writeError(w, http.StatusBadRequest, msgInvalidBody)
	}
	return false
}

// writeValidation maps a wrapped domain.ErrValidation to a 400.
func writeValidation(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrMissingFields) {
		writeError(w, http.StatusBadRequest, msgMissing)
		return
	}
	writeError(w, http.StatusBadRequest, validationMessage(err))
}

// validationMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.PlanService.Plan: validation error: days must be between 1 and 30"
// → "days must be between 1 and 30"
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
