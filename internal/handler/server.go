// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. They are split into domain-specific
// files (plan.go, trip.go, etc.) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// PlanServicer defines the generation operations the plan handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without a real model behind it.
type PlanServicer interface {
	Ready() error
	Plan(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error)
	Ping(ctx context.Context) (string, error)
}

// TripServicer defines the saved-trip operations the trip handlers depend on.
type TripServicer interface {
	Save(ctx context.Context, owner string, trip domain.Trip) (domain.Trip, error)
	List(ctx context.Context, owner string, filter domain.TripFilter) ([]domain.Trip, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, []domain.DayEntry, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
	Stats(ctx context.Context, owner string) (domain.TripStats, error)
	Export(ctx context.Context, owner string) ([]domain.ExportRow, error)
}

// Setup describes how far the deployment is from being able to generate
// trips. Missing lists unset environment variables.
type Setup struct {
	Provider string
	KeyEnv   string
	Missing  []string
}

// Server holds the dependencies shared by every handler.
type Server struct {
	plans  PlanServicer
	trips  TripServicer
	setup  Setup
	logger *slog.Logger
	now    func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(plans PlanServicer, trips TripServicer, setup Setup, logger *slog.Logger) *Server {
	return &Server{plans: plans, trips: trips, setup: setup, logger: logger, now: time.Now}
}

// Register mounts every API route on r. Routes under requireAuth need a
// verified bearer token; the rest are public.
func (s *Server) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/setup-status", s.GetSetupStatus)
	r.Post("/plan-trip", s.PlanTrip)
	r.Get("/test-api", s.TestAPI)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/me", s.GetMe)
		r.Get("/stats", s.GetStats)
		r.Get("/export", s.GetExport)
		r.Post("/itinerary/parse", s.ParseItinerary)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Get("/{id}/export", s.ExportTrip)
		})
	})
}
