package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/enrich"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/metrics"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// TripService implements business logic for saved trips.
type TripService struct {
	repo    repo.TripRepo
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo. m may be nil.
func NewTripService(r repo.TripRepo, m *metrics.Metrics, logger *slog.Logger) *TripService {
	return &TripService{repo: r, metrics: m, logger: logger, now: time.Now}
}

// Save validates a generated plan, derives its title and metadata, and
// persists it for owner. trip.ID and trip.CreatedAt are ignored.
func (s *TripService) Save(ctx context.Context, owner string, trip domain.Trip) (domain.Trip, error) {
	if err := validateForSave(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}

	trip.OwnerID = owner
	trip.Destination = strings.TrimSpace(trip.Destination)
	trip.Title = strings.TrimSpace(trip.Title)
	if trip.Title == "" {
		trip.Title = domain.DefaultTitle(trip.Days, trip.Destination)
	}
	trip = enrich.Enrich(trip)

	saved, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, s.persistence(ctx, "service.TripService.Save", err)
	}
	s.metrics.TripSaved()
	return saved, nil
}

// validateForSave applies the save rules: budget and travelers may be
// omitted but must be known values when present.
func validateForSave(t domain.Trip) error {
	if strings.TrimSpace(t.Destination) == "" || t.Days == 0 ||
		strings.TrimSpace(t.Month) == "" || strings.TrimSpace(t.Interests) == "" ||
		strings.TrimSpace(t.Itinerary) == "" {
		return domain.ErrMissingFields
	}
	if t.Days == domain.DaysNotWhole {
		return domain.ErrDaysNotWhole
	}
	if t.Days < 1 || t.Days > domain.MaxTripDays {
		return fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, domain.MaxTripDays)
	}
	if !domain.ValidMonth(t.Month) {
		return fmt.Errorf("%w: month must be a full month name", domain.ErrValidation)
	}
	if t.Budget != "" && !t.Budget.Valid() {
		return fmt.Errorf("%w: budget must be one of low, moderate, high, very-high", domain.ErrValidation)
	}
	if t.Travelers != "" && !t.Travelers.Valid() {
		return fmt.Errorf("%w: travelers must be one of single, couple, family", domain.ErrValidation)
	}
	return nil
}

// List returns owner's trips, newest first. An empty window means all.
func (s *TripService) List(ctx context.Context, owner string, filter domain.TripFilter) ([]domain.Trip, error) {
	if filter.Window == "" {
		filter.Window = domain.WindowAll
	}
	if !filter.Window.Valid() {
		return nil, fmt.Errorf("service.TripService.List: %w: filter must be one of all, recent, long, short", domain.ErrValidation)
	}
	if filter.Window == domain.WindowRecent {
		filter.Since = s.now().Add(-domain.RecentWindow)
	}

	trips, err := s.repo.List(ctx, owner, filter)
	if err != nil {
		return nil, s.persistence(ctx, "service.TripService.List", err)
	}
	return trips, nil
}

// Get returns one of owner's trips together with its parsed day view.
func (s *TripService) Get(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
	trip, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return domain.Trip{}, nil, s.persistence(ctx, "service.TripService.Get", err)
	}
	return trip, itinerary.Parse(trip.Itinerary), nil
}

// Delete removes one of owner's trips.
func (s *TripService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return s.persistence(ctx, "service.TripService.Delete", err)
	}
	return nil
}

// Stats summarises all of owner's trips.
func (s *TripService) Stats(ctx context.Context, owner string) (domain.TripStats, error) {
	trips, err := s.repo.List(ctx, owner, domain.TripFilter{Window: domain.WindowAll})
	if err != nil {
		return domain.TripStats{}, s.persistence(ctx, "service.TripService.Stats", err)
	}
	return computeStats(trips), nil
}

// computeStats expects trips newest first; a tie for favorite destination
// goes to the one saved most recently.
func computeStats(trips []domain.Trip) domain.TripStats {
	stats := domain.TripStats{TotalTrips: len(trips)}

	type tally struct {
		name  string
		count int
		first int
	}
	counts := map[string]*tally{}
	for i, t := range trips {
		stats.TotalDays += t.Days
		key := strings.ToLower(strings.TrimSpace(t.Destination))
		if c, ok := counts[key]; ok {
			c.count++
			continue
		}
		counts[key] = &tally{name: t.Destination, count: 1, first: i}
	}

	if len(counts) == 0 {
		return stats
	}
	ranked := make([]*tally, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	slices.SortFunc(ranked, func(a, b *tally) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(a.first, b.first))
	})
	stats.FavoriteDestination = ranked[0].name
	return stats
}

// Export returns one row per saved trip, newest first.
func (s *TripService) Export(ctx context.Context, owner string) ([]domain.ExportRow, error) {
	trips, err := s.repo.List(ctx, owner, domain.TripFilter{Window: domain.WindowAll})
	if err != nil {
		return nil, s.persistence(ctx, "service.TripService.Export", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, domain.ExportRow{
			TripID:          t.ID.String(),
			Title:           t.Title,
			Destination:     t.Destination,
			Days:            t.Days,
			Month:           t.Month,
			Interests:       t.Interests,
			Budget:          string(t.Budget),
			Travelers:       string(t.Travelers),
			Difficulty:      string(t.Difficulty),
			EstimatedBudget: t.EstimatedBudget,
			CreatedAt:       t.CreatedAt,
			Tags:            t.Tags,
			Highlights:      t.Highlights,
		})
	}
	return rows, nil
}

// persistence passes ErrNotFound through and reports every other repo
// failure as ErrPersistence, logging the cause.
func (s *TripService) persistence(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.ErrorContext(ctx, "trip store failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
