package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

// mockPlanServicer is a test double for handler.PlanServicer.
// Set only the method fields your test needs; planCalls counts Plan invocations.
type mockPlanServicer struct {
	ready     error
	plan      func(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error)
	ping      func(ctx context.Context) (string, error)
	planCalls int
}

func (m *mockPlanServicer) Ready() error { return m.ready }
func (m *mockPlanServicer) Plan(ctx context.Context, req domain.TripRequest) (domain.TripPlan, error) {
	m.planCalls++
	return m.plan(ctx, req)
}
func (m *mockPlanServicer) Ping(ctx context.Context) (string, error) {
	return m.ping(ctx)
}

// mockTripServicer is a test double for handler.TripServicer.
type mockTripServicer struct {
	save   func(ctx context.Context, owner string, trip domain.Trip) (domain.Trip, error)
	list   func(ctx context.Context, owner string, filter domain.TripFilter) ([]domain.Trip, error)
	get    func(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, []domain.DayEntry, error)
	delete func(ctx context.Context, owner string, id uuid.UUID) error
	stats  func(ctx context.Context, owner string) (domain.TripStats, error)
	export func(ctx context.Context, owner string) ([]domain.ExportRow, error)
}

func (m *mockTripServicer) Save(ctx context.Context, owner string, t domain.Trip) (domain.Trip, error) {
	return m.save(ctx, owner, t)
}
func (m *mockTripServicer) List(ctx context.Context, owner string, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, owner, f)
}
func (m *mockTripServicer) Get(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, []domain.DayEntry, error) {
	return m.get(ctx, owner, id)
}
func (m *mockTripServicer) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	return m.delete(ctx, owner, id)
}
func (m *mockTripServicer) Stats(ctx context.Context, owner string) (domain.TripStats, error) {
	return m.stats(ctx, owner)
}
func (m *mockTripServicer) Export(ctx context.Context, owner string) ([]domain.ExportRow, error) {
	return m.export(ctx, owner)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.PlanServicer = (*mockPlanServicer)(nil)
	_ handler.TripServicer = (*mockTripServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const testSecret = "handler-test-secret"

var testSetup = handler.Setup{Provider: "gemini", KeyEnv: "GOOGLE_GENERATIVE_AI_API_KEY"}

// newHTTPHandler wires a Server with the given mocks into a chi router behind
// the real bearer-token middleware, the same way main.go does.
func newHTTPHandler(plans handler.PlanServicer, trips handler.TripServicer) http.Handler {
	return newHTTPHandlerWithSetup(plans, trips, testSetup)
}

func newHTTPHandlerWithSetup(plans handler.PlanServicer, trips handler.TripServicer, setup handler.Setup) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := auth.NewHMACVerifier(testSecret, "")
	r := chi.NewRouter()
	handler.NewServer(plans, trips, setup, logger).Register(r, middleware.NewAuthHandler(verifier, logger))
	return r
}

// bearer returns an Authorization header value for uid.
func bearer(t *testing.T, uid string) string {
	t.Helper()
	raw, err := auth.NewHMACVerifier(testSecret, "").Sign(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: uid + "@example.com",
		Name:  "Test User",
	})
	require.NoError(t, err)
	return "Bearer " + raw
}

// do sends a request through h. body may be nil, a string, or any value to
// encode as JSON. An empty uid sends no Authorization header.
func do(t *testing.T, h http.Handler, method, path, uid string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewBuffer(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", bearer(t, uid))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}
