// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate the
// generator and repo calls. No SQL or HTTP lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/generation"
	"github.com/pkordes/trip-planner/backend/internal/metrics"
	"github.com/pkordes/trip-planner/backend/internal/prompt"
)

// PlanService turns a TripRequest into a generated itinerary.
type PlanService struct {
	gen     generation.Generator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewPlanService constructs a PlanService. m may be nil.
func NewPlanService(g generation.Generator, m *metrics.Metrics, logger *slog.Logger) *PlanService {
	return &PlanService{gen: g, metrics: m, logger: logger}
}

// Ready reports ErrConfiguration when the generator has no credential.
func (s *PlanService) Ready() error {
	if !s.gen.Configured() {
		return fmt.Errorf("service.PlanService.Ready: %s: %w", s.gen.Name(), domain.ErrConfiguration)
	}
	return nil
}

// Plan validates req, builds the prompt and makes one generation call.
// The itinerary is returned exactly as the model produced it.
func (s *PlanService) Plan(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error) {
	if err := s.Ready(); err != nil {
		return domain.TripPlan{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	text, err := s.generate(ctx, "plan", prompt.Build(req), prompt.PlanMaxTokens)
	if err != nil {
		s.logger.ErrorContext(ctx, "trip plan generation failed",
			"provider", s.gen.Name(),
			"destination", req.Destination,
			"days", req.Days,
			"error", err,
		)
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	return domain.TripPlan{TripRequest: req, Itinerary: text}, nil
}

// Ping sends the fixed connectivity prompt and returns the model's reply.
func (s *PlanService) Ping(ctx context.Context) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}
	text, err := s.generate(ctx, "ping", prompt.Connectivity, prompt.ConnectivityMaxTokens)
	if err != nil {
		s.logger.ErrorContext(ctx, "connectivity check failed", "provider", s.gen.Name(), "error", err)
		return "", fmt.Errorf("service.PlanService.Ping: %w", err)
	}
	return text, nil
}

func (s *PlanService) generate(ctx context.Context, kind, p string, maxTokens int) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, p, maxTokens)
	s.metrics.ObserveGeneration(kind, outcome(err), time.Since(start))
	return text, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrConfiguration):
		return metrics.OutcomeUnconfigured
	case errors.Is(err, domain.ErrCredential):
		return metrics.OutcomeCredential
	default:
		return metrics.OutcomeError
	}
}
