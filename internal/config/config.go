// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names for the text-generation credentials.
const (
	GeminiKeyEnv = "GOOGLE_GENERATIVE_AI_API_KEY"
	OpenAIKeyEnv = "OPENAI_API_KEY"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler: "json" (default) or "text" for
	// colored human-readable output during development.
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// Generation configures the text-generation provider.
	Generation Generation

	// Auth configures bearer token verification.
	Auth Auth
}

// Generation holds text-generation provider settings.
// APIKey may be empty: the server still starts, and generation requests
// fail with a configuration error until the key is provided.
type Generation struct {
	// Provider is "gemini" (default) or "openai".
	Provider string
	// Model overrides the provider's default model. Optional.
	Model string
	// APIKey is read from GOOGLE_GENERATIVE_AI_API_KEY or OPENAI_API_KEY
	// depending on Provider.
	APIKey string
	// KeyEnv is the name of the variable APIKey was read from.
	KeyEnv string
	// BaseURL overrides the provider endpoint. Optional.
	BaseURL string
}

// Auth holds bearer token settings. Either Issuer (OIDC ID tokens from the
// hosted identity provider) or JWTSecret (HS256 tokens) must be set.
type Auth struct {
	Issuer    string
	Audience  string
	JWTSecret string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Generation: Generation{
			Provider: strings.ToLower(getEnv("GENERATION_PROVIDER", "gemini")),
			Model:    os.Getenv("GENERATION_MODEL"),
			BaseURL:  os.Getenv("GENERATION_BASE_URL"),
		},
		Auth: Auth{
			Issuer:    os.Getenv("AUTH_ISSUER"),
			Audience:  os.Getenv("AUTH_AUDIENCE"),
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
	}

	var missing []string
	var invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	switch cfg.Generation.Provider {
	case "gemini":
		cfg.Generation.KeyEnv = GeminiKeyEnv
	case "openai":
		cfg.Generation.KeyEnv = OpenAIKeyEnv
	default:
		invalid = append(invalid, "GENERATION_PROVIDER must be gemini or openai")
	}
	if cfg.Generation.KeyEnv != "" {
		cfg.Generation.APIKey = os.Getenv(cfg.Generation.KeyEnv)
	}

	if cfg.Auth.Issuer == "" && cfg.Auth.JWTSecret == "" {
		missing = append(missing, "AUTH_ISSUER or AUTH_JWT_SECRET")
	}
	if cfg.Auth.Issuer != "" && cfg.Auth.Audience == "" {
		missing = append(missing, "AUTH_AUDIENCE")
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

// MissingOptional returns the names of variables that are not required to
// start but are required for trip generation to work.
func (c Config) MissingOptional() []string {
	var missing []string
	if c.Generation.APIKey == "" {
		missing = append(missing, c.Generation.KeyEnv)
	}
	return missing
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
