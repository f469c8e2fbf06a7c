package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

// NewAuthHandler returns a middleware that requires a valid bearer token.
// The verified identity is stored on the request context for handlers to
// read with auth.FromContext; anything else is answered with 401.
func NewAuthHandler(v auth.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := auth.BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			id, err := v.Verify(r.Context(), raw)
			if err != nil {
				log.WarnContext(r.Context(), "bearer token rejected", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
