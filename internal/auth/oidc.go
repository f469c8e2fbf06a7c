package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// OIDCVerifier verifies ID tokens issued by an OpenID Connect provider.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the provider's signing keys from issuer and
// returns a verifier that requires audience as the token's client ID.
func NewOIDCVerifier(ctx context.Context, issuer, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("auth.NewOIDCVerifier: discover %s: %w", issuer, err)
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: audience})}, nil
}

// NewOIDCVerifierWithKeySet builds a verifier without discovery.
func NewOIDCVerifierWithKeySet(issuer, audience string, keys oidc.KeySet) *OIDCVerifier {
	return &OIDCVerifier{verifier: oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: audience})}
}

// Verify validates rawToken's signature, issuer, audience and expiry.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (domain.Identity, error) {
	tok, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.OIDCVerifier.Verify: %w: %w", ErrUnauthenticated, err)
	}
	var claims Claims
	if err := tok.Claims(&claims); err != nil {
		return domain.Identity{}, fmt.Errorf("auth.OIDCVerifier.Verify: %w: %w", ErrUnauthenticated, err)
	}
	claims.Subject = tok.Subject
	id := claims.identity()
	if id.UID == "" {
		return domain.Identity{}, fmt.Errorf("auth.OIDCVerifier.Verify: %w: token has no subject", ErrUnauthenticated)
	}
	return id, nil
}
