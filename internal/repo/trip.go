// Package repo contains all database access logic for the trip planner API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for saved trips.
// Every read and delete is scoped to an owner: a trip belonging to someone
// else is reported as domain.ErrNotFound.
type TripRepo interface {
	// Create inserts a trip and returns the persisted record with the
	// DB-generated id and created_at populated. trip.OwnerID must be set.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves one of owner's trips.
	GetByID(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, error)

	// List returns owner's trips matching filter, newest first.
	List(ctx context.Context, owner string, filter domain.TripFilter) ([]domain.Trip, error)

	// Delete removes one of owner's trips.
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, title, destination, days, month, interests, budget, travelers,
		itinerary, highlights, tags, difficulty, estimated_budget, created_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, title, destination, days, month, interests, budget, travelers,
		                   itinerary, highlights, tags, difficulty, estimated_budget)
		VALUES (@owner_id, @title, @destination, @days, @month, @interests, @budget, @travelers,
		        @itinerary, @highlights, @tags, @difficulty, @estimated_budget)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"owner_id":         trip.OwnerID,
		"title":            trip.Title,
		"destination":      trip.Destination,
		"days":             trip.Days,
		"month":            trip.Month,
		"interests":        trip.Interests,
		"budget":           string(trip.Budget),
		"travelers":        string(trip.Travelers),
		"itinerary":        trip.Itinerary,
		"highlights":       nonNil(trip.Highlights),
		"tags":             nonNil(trip.Tags),
		"difficulty":       string(trip.Difficulty),
		"estimated_budget": trip.EstimatedBudget,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to owner.
func (r *pgTripRepo) GetByID(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": owner}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns owner's trips ordered by created_at descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context, owner string, filter domain.TripFilter) ([]domain.Trip, error) {
	where, args := listConditions(owner, filter)
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// listConditions builds the WHERE clauses for List. Substring matching uses
// strpos so the query text is never interpreted as a LIKE pattern.
func listConditions(owner string, filter domain.TripFilter) ([]string, pgx.NamedArgs) {
	where := []string{"owner_id = @owner_id"}
	args := pgx.NamedArgs{"owner_id": owner}

	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, "(strpos(lower(destination), lower(@query)) > 0 OR strpos(lower(title), lower(@query)) > 0)")
		args["query"] = q
	}

	switch filter.Window {
	case domain.WindowRecent:
		where = append(where, "created_at >= @since")
		args["since"] = filter.Since
	case domain.WindowLong:
		where = append(where, "days > @long_days")
		args["long_days"] = domain.LongTripDays
	case domain.WindowShort:
		where = append(where, "days <= @long_days")
		args["long_days"] = domain.LongTripDays
	}

	return where, args
}

// Delete removes a trip by primary key, scoped to owner.
func (r *pgTripRepo) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": owner})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                             domain.Trip
		id                            pgtype.UUID
		budget, travelers, difficulty string
	)

	err := s.Scan(&id, &t.OwnerID, &t.Title, &t.Destination, &t.Days, &t.Month, &t.Interests,
		&budget, &travelers, &t.Itinerary, &t.Highlights, &t.Tags, &difficulty,
		&t.EstimatedBudget, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Budget = domain.BudgetTier(budget)
	t.Travelers = domain.TravelerType(travelers)
	t.Difficulty = domain.Difficulty(difficulty)
	t.Highlights = nonNil(t.Highlights)
	t.Tags = nonNil(t.Tags)

	return t, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
