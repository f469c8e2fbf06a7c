// Package generation calls a hosted text-generation model.
// Each call is a single attempt; callers decide whether to try again.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Generator sends a prompt to a hosted model and returns the generated text.
//
// Errors wrap one of domain.ErrConfiguration (no credential, nothing was sent),
// domain.ErrCredential (the provider rejected the credential) or
// domain.ErrGeneration (anything else).
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Configured reports whether a credential is present.
	Configured() bool

	// Name returns the provider name, e.g. "gemini".
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the provider endpoint (proxies, tests). Optional.
	BaseURL string
}

// New returns the Generator for cfg.Provider. An empty provider means Gemini.
// A missing APIKey is not an error here: the Generator reports ErrConfiguration per call.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGemini(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("generation.New: unknown provider %q", cfg.Provider)
	}
}

// credentialMarker is the text both providers put in key-rejection errors.
const credentialMarker = "API key"

// classify wraps a provider error in the matching domain sentinel.
func classify(op string, err error) error {
	if strings.Contains(err.Error(), credentialMarker) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrCredential, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrGeneration, err)
}

func emptyResponse(op string) error {
	return fmt.Errorf("%s: %w: provider returned no text", op, domain.ErrGeneration)
}
