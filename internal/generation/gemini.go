package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini generates text with the Google Gemini API.
type Gemini struct {
	client *genai.Client // nil when no API key is configured
	model  string
}

// NewGemini builds a Gemini generator. The client is only created when an
// API key is present; creating it performs no network I/O.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	g := &Gemini{model: cfg.Model}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("generation.NewGemini: %w", err)
	}
	g.client = client
	return g, nil
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	const op = "generation.Gemini.Generate"
	if g.client == nil {
		return "", fmt.Errorf("%s: %w: Gemini API key is not set", op, domain.ErrConfiguration)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		return "", classify(op, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse(op)
	}
	return text, nil
}

// Configured implements Generator.
func (g *Gemini) Configured() bool { return g.client != nil }

// Name implements Generator.
func (g *Gemini) Name() string { return ProviderGemini }
