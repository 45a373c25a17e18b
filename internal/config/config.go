// Package config provides environment-driven configuration for the
// resume screening backend.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds process-wide configuration assembled once at startup.
type Config struct {
	Port        int
	DatabaseURL string

	// External model provider
	GeminiAPIKey   string
	FeedbackModel  string
	EmbeddingModel string

	// Bound on concurrent embedding calls
	ScoringConcurrency int

	// Candidate metering
	DefaultUsageLimit int

	AllowedOrigins []string

	LogJSON  bool
	LogDebug bool
}

// New creates the top-level configuration from environment variables.
// DATABASE_URL and GEMINI_API_KEY are required; everything else has a
// default.
func New() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	concurrency, err := envInt("SCORING_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	usageLimit, err := envInt("DEFAULT_USAGE_LIMIT", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               port,
		DatabaseURL:        databaseURL,
		GeminiAPIKey:       apiKey,
		FeedbackModel:      envStr("FEEDBACK_MODEL", "gemini-1.5-flash"),
		EmbeddingModel:     envStr("EMBEDDING_MODEL", "text-embedding-004"),
		ScoringConcurrency: concurrency,
		DefaultUsageLimit:  usageLimit,
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogJSON:            envBool("LOG_JSON"),
		LogDebug:           envBool("LOG_DEBUG"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.ScoringConcurrency < 1 {
		return fmt.Errorf("SCORING_CONCURRENCY must be at least 1, got: %d", c.ScoringConcurrency)
	}
	if c.DefaultUsageLimit < 1 {
		return fmt.Errorf("DEFAULT_USAGE_LIMIT must be at least 1, got: %d", c.DefaultUsageLimit)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return f, nil
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// splitList splits a comma-separated environment value, trimming
// whitespace and dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
