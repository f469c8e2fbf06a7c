package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:              uuid.New(),
		OwnerID:         "user-1",
		Title:           "5-Day Trip to Tokyo",
		Destination:     "Tokyo",
		Days:            5,
		Month:           "April",
		Interests:       "food",
		Budget:          domain.BudgetModerate,
		Travelers:       domain.TravelerCouple,
		Itinerary:       "Day 1: Arrival\n- 9:00 AM - Visit Senso-ji temple",
		Highlights:      []string{},
		Tags:            []string{"Asia", "Culinary"},
		Difficulty:      domain.DifficultyEasy,
		EstimatedBudget: "$1,000 - $1,300",
		CreatedAt:       time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

type tripBody struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Destination     string    `json:"destination"`
	Days            int       `json:"days"`
	Budget          string    `json:"budget"`
	Highlights      []string  `json:"highlights"`
	Tags            []string  `json:"tags"`
	Difficulty      string    `json:"difficulty"`
	EstimatedBudget string    `json:"estimatedBudget"`
	CreatedAt       time.Time `json:"createdAt"`
}

func TestTripRoutes_requireAuth(t *testing.T) {
	h := newHTTPHandler(nil, &mockTripServicer{})
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/trips"},
		{http.MethodGet, "/trips"},
		{http.MethodGet, "/trips/" + uuid.NewString()},
		{http.MethodDelete, "/trips/" + uuid.NewString()},
		{http.MethodGet, "/trips/" + uuid.NewString() + "/export"},
		{http.MethodGet, "/export"},
		{http.MethodGet, "/stats"},
		{http.MethodGet, "/me"},
		{http.MethodPost, "/itinerary/parse"},
	} {
		rec := do(t, h, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestCreateTrip_returns201(t *testing.T) {
	var gotOwner string
	var gotTrip domain.Trip
	svc := &mockTripServicer{save: func(_ context.Context, owner string, trip domain.Trip) (domain.Trip, error) {
		gotOwner, gotTrip = owner, trip
		saved := tripFixture()
		saved.Days = trip.Days
		return saved, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodPost, "/trips", "user-1", map[string]any{
		"destination": "Tokyo",
		"days":        "5",
		"month":       "April",
		"interests":   "food",
		"itinerary":   "Day 1: Arrival",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", gotOwner)
	assert.Equal(t, 5, gotTrip.Days)
	assert.Empty(t, gotTrip.Budget)
	body := decode[tripBody](t, rec)
	assert.Equal(t, "5-Day Trip to Tokyo", body.Title)
	assert.Equal(t, []string{"Asia", "Culinary"}, body.Tags)
	assert.Equal(t, []string{}, body.Highlights)
	assert.Equal(t, "$1,000 - $1,300", body.EstimatedBudget)
}

func TestCreateTrip_errors(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
		want   string
	}{
		"missing":     {fmt.Errorf("service.TripService.Save: %w", domain.ErrMissingFields), http.StatusBadRequest, "Missing required fields"},
		"invalid":     {fmt.Errorf("service.TripService.Save: %w: month must be a full month name", domain.ErrValidation), http.StatusBadRequest, "month must be a full month name"},
		"persistence": {fmt.Errorf("service.TripService.Save: %w: %w", domain.ErrPersistence, errors.New("dial tcp")), http.StatusInternalServerError, "Failed to save trip"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &mockTripServicer{save: func(context.Context, string, domain.Trip) (domain.Trip, error) {
				return domain.Trip{}, tc.err
			}}

			rec := do(t, newHTTPHandler(nil, svc), http.MethodPost, "/trips", "user-1", map[string]any{"destination": "Tokyo"})

			require.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.want, errorBody(t, rec))
		})
	}
}

func TestListTrips_passesFilter(t *testing.T) {
	var got domain.TripFilter
	svc := &mockTripServicer{list: func(_ context.Context, owner string, f domain.TripFilter) ([]domain.Trip, error) {
		assert.Equal(t, "user-1", owner)
		got = f
		return []domain.Trip{tripFixture()}, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips?q=tok&filter=Recent", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TripFilter{Query: "tok", Window: domain.WindowRecent}, got)
	body := decode[struct {
		Data []tripBody `json:"data"`
	}](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Tokyo", body.Data[0].Destination)
}

func TestListTrips_emptyIsArray(t *testing.T) {
	svc := &mockTripServicer{list: func(context.Context, string, domain.TripFilter) ([]domain.Trip, error) {
		return nil, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestListTrips_badFilter(t *testing.T) {
	svc := &mockTripServicer{list: func(context.Context, string, domain.TripFilter) ([]domain.Trip, error) {
		return nil, fmt.Errorf("service.TripService.List: %w: filter must be one of all, recent, long, short", domain.ErrValidation)
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips?filter=ancient", "user-1", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "filter must be one of all, recent, long, short", errorBody(t, rec))
}

func TestGetTrip_withDays(t *testing.T) {
	trip := tripFixture()
	svc := &mockTripServicer{get: func(_ context.Context, _ string, id uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
		require.Equal(t, trip.ID, id)
		return trip, []domain.DayEntry{{
			Number: 1, Title: "Arrival",
			Activities: []domain.ActivityEntry{{Time: "9:00 AM", Description: "Visit Senso-ji temple", Category: domain.CategoryCulture}},
		}}, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips/"+trip.ID.String(), "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Trip tripBody `json:"trip"`
		Days []struct {
			Day        int    `json:"day"`
			Title      string `json:"title"`
			Activities []struct {
				Time        string `json:"time"`
				Description string `json:"description"`
				Category    string `json:"category"`
			} `json:"activities"`
		} `json:"days"`
	}](t, rec)
	assert.Equal(t, trip.ID, body.Trip.ID)
	assert.True(t, trip.CreatedAt.Equal(body.Trip.CreatedAt))
	require.Len(t, body.Days, 1)
	assert.Equal(t, 1, body.Days[0].Day)
	require.Len(t, body.Days[0].Activities, 1)
	assert.Equal(t, "9:00 AM", body.Days[0].Activities[0].Time)
	assert.Equal(t, "culture", body.Days[0].Activities[0].Category)
}

func TestGetTrip_notFound(t *testing.T) {
	svc := &mockTripServicer{get: func(context.Context, string, uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Get: %w", domain.ErrNotFound)
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips/"+uuid.NewString(), "user-1", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trip not found", errorBody(t, rec))
}

func TestGetTrip_invalidID(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockTripServicer{}), http.MethodGet, "/trips/not-a-uuid", "user-1", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid trip id", errorBody(t, rec))
}

func TestDeleteTrip(t *testing.T) {
	known := uuid.New()
	svc := &mockTripServicer{delete: func(_ context.Context, owner string, id uuid.UUID) error {
		if owner == "user-1" && id == known {
			return nil
		}
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
	}}
	h := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodDelete, "/trips/"+known.String(), "user-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/trips/"+known.String(), "user-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTrip_storeFailure(t *testing.T) {
	svc := &mockTripServicer{delete: func(context.Context, string, uuid.UUID) error {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrPersistence)
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodDelete, "/trips/"+uuid.NewString(), "user-1", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to access saved trips", errorBody(t, rec))
}

func TestExportTrip_plainText(t *testing.T) {
	trip := tripFixture()
	svc := &mockTripServicer{get: func(context.Context, string, uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
		return trip, nil, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips/"+trip.ID.String()+"/export", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Tokyo-5days-itinerary.txt`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "5-Day Trip to Tokyo\n"+
		"Travel Month: April\n"+
		"Interests: food\n"+
		"\nDETAILED ITINERARY:\n"+
		"Day 1: Arrival\n- 9:00 AM - Visit Senso-ji temple\n"+
		"\nGenerated by AI Trip Planner\n", rec.Body.String())
}

func TestExportTrip_keepsCustomTitle(t *testing.T) {
	trip := tripFixture()
	trip.Title = "Cherry blossom week"
	svc := &mockTripServicer{get: func(context.Context, string, uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
		return trip, nil, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/trips/"+trip.ID.String()+"/export", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Cherry blossom week\nTravel Month: April\n"), rec.Body.String())
}
