package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

type meResponse struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
	PhotoURL    string     `json:"photoURL,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type statsResponse struct {
	TotalTrips          int    `json:"totalTrips"`
	TotalDays           int    `json:"totalDays"`
	FavoriteDestination string `json:"favoriteDestination"`
}

// GetMe handles GET /me: the identity asserted by the caller's token.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
		CreatedAt:   id.CreatedAt,
	})
}

// GetStats handles GET /stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trips.Stats(r.Context(), mustOwner(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalTrips:          stats.TotalTrips,
		TotalDays:           stats.TotalDays,
		FavoriteDestination: stats.FavoriteDestination,
	})
}
