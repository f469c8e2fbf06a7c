package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// HMACVerifier verifies HS256 tokens signed with a shared secret.
// Used for local development and by integration tests.
type HMACVerifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

// NewHMACVerifier returns a verifier for tokens signed with secret.
// When audience is non-empty the aud claim must contain it.
func NewHMACVerifier(secret, audience string) *HMACVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &HMACVerifier{secret: []byte(secret), audience: audience, parser: jwt.NewParser(opts...)}
}

// Verify parses and validates rawToken.
func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (domain.Identity, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(rawToken, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.HMACVerifier.Verify: %w: %w", ErrUnauthenticated, err)
	}
	id := claims.identity()
	if id.UID == "" {
		return domain.Identity{}, fmt.Errorf("auth.HMACVerifier.Verify: %w: token has no subject", ErrUnauthenticated)
	}
	return id, nil
}

// Sign issues an HS256 token for claims. Exposed for development tooling and tests.
func (v *HMACVerifier) Sign(claims Claims) (string, error) {
	if len(claims.Audience) == 0 && v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
