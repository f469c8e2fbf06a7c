package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func TestGetMe(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockTripServicer{}), http.MethodGet, "/me", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "user-1", body["uid"])
	assert.Equal(t, "user-1@example.com", body["email"])
	assert.Equal(t, "Test User", body["displayName"])
	assert.NotContains(t, body, "photoURL")
}

func TestGetStats(t *testing.T) {
	svc := &mockTripServicer{stats: func(_ context.Context, owner string) (domain.TripStats, error) {
		assert.Equal(t, "user-1", owner)
		return domain.TripStats{TotalTrips: 3, TotalDays: 12, FavoriteDestination: "Rome"}, nil
	}}

	rec := do(t, newHTTPHandler(nil, svc), http.MethodGet, "/stats", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalTrips":3,"totalDays":12,"favoriteDestination":"Rome"}`, rec.Body.String())
}

func TestParseItinerary(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockTripServicer{}), http.MethodPost, "/itinerary/parse", "user-1",
		map[string]string{"itinerary": "Day 1: Old Town\n- 10am visit the museum\n- Lunch at a food market"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"days":[{"day":1,"title":"Old Town","activities":[
		{"time":"10am","description":"visit the museum","category":"culture"},
		{"description":"Lunch at a food market","category":"food"}
	]}]}`, rec.Body.String())
}

func TestParseItinerary_unstructured(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockTripServicer{}), http.MethodPost, "/itinerary/parse", "user-1",
		map[string]string{"itinerary": "Just wander around and enjoy."})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"days":[]}`, rec.Body.String())
}
