package spec_test

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/spec"
)

type document struct {
	OpenAPI string                            `yaml:"openapi"`
	Paths   map[string]map[string]interface{} `yaml:"paths"`
}

// TestOpenAPI_documentsEveryRoute walks the real router and checks that each
// method and path it serves appears in the embedded document.
func TestOpenAPI_documentsEveryRoute(t *testing.T) {
	var doc document
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	require.True(t, strings.HasPrefix(doc.OpenAPI, "3."))

	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	handler.NewServer(nil, nil, handler.Setup{}, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r, passthrough)

	var seen int
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		ops, ok := doc.Paths[route]
		if assert.True(t, ok, "route %s is not documented", route) {
			assert.Contains(t, ops, strings.ToLower(method), "%s %s is not documented", method, route)
		}
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 13, seen)
}
