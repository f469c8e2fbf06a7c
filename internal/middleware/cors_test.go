package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler(t *testing.T) {
	const frontend = "http://localhost:3000"

	tests := []struct {
		name          string
		method        string
		path          string
		origin        string
		preflight     string // Access-Control-Request-Method
		reqHeaders    string // Access-Control-Request-Headers, lowercase and sorted as browsers send it
		wantOrigin    string
		wantMethodHas string
		wantExposed   string
	}{
		{
			name:       "plan request from frontend",
			method:     http.MethodPost,
			path:       "/plan-trip",
			origin:     frontend,
			wantOrigin: frontend,
		},
		{
			name:   "unknown origin gets no allow header",
			method: http.MethodGet,
			path:   "/trips",
			origin: "http://evil.example.com",
		},
		{
			name:          "save preflight with json body",
			method:        http.MethodOptions,
			path:          "/trips",
			origin:        frontend,
			preflight:     http.MethodPost,
			reqHeaders:    "authorization,content-type",
			wantOrigin:    frontend,
			wantMethodHas: http.MethodPost,
		},
		{
			name:          "delete preflight with bearer token",
			method:        http.MethodOptions,
			path:          "/trips/3f1c",
			origin:        frontend,
			preflight:     http.MethodDelete,
			reqHeaders:    "authorization",
			wantOrigin:    frontend,
			wantMethodHas: http.MethodDelete,
		},
		{
			name:        "export filename readable by scripts",
			method:      http.MethodGet,
			path:        "/export",
			origin:      frontend,
			wantOrigin:  frontend,
			wantExposed: "Content-Disposition",
		},
	}

	h := middleware.NewCORSHandler([]string{frontend})(okHandler)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Origin", tc.origin)
			if tc.preflight != "" {
				req.Header.Set("Access-Control-Request-Method", tc.preflight)
				req.Header.Set("Access-Control-Request-Headers", tc.reqHeaders)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantMethodHas != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), tc.wantMethodHas)
			}
			if tc.wantExposed != "" {
				assert.Equal(t, tc.wantExposed, rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
