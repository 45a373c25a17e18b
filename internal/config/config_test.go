package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/screener")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestNew_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.FeedbackModel)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 4, cfg.ScoringConcurrency)
	assert.Equal(t, 3, cfg.DefaultUsageLimit)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestNew_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNew_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/screener")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNew_AllowedOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000 ,")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestNew_InvalidConcurrency(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SCORING_CONCURRENCY", "0")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORING_CONCURRENCY")
}

func TestNewDecisionConfig_Defaults(t *testing.T) {
	cfg, err := NewDecisionConfig()
	require.NoError(t, err)

	assert.Equal(t, PolicyThreeBand, cfg.Policy)
	assert.InDelta(t, 0.60, cfg.High, 1e-9)
	assert.InDelta(t, 0.50, cfg.Average, 1e-9)
	assert.InDelta(t, 0.70, cfg.Select, 1e-9)
}

func TestNewDecisionConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown policy", map[string]string{"DECISION_POLICY": "fuzzy"}},
		{"high below average", map[string]string{"DECISION_HIGH": "0.4"}},
		{"threshold above one", map[string]string{"DECISION_SELECT": "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewDecisionConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewSessionConfig(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "")
	_, err := NewSessionConfig()
	require.Error(t, err)

	t.Setenv("SESSION_JWT_SECRET", "shhh")
	cfg, err := NewSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, "shhh", cfg.Secret)
}

func TestNewSMTPConfig(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	cfg, err := NewSMTPConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "notify@example.com")
	t.Setenv("SMTP_PASSWORD", "hunter2")

	cfg, err = NewSMTPConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 465, cfg.Port)
	// ContactEmail falls back to the SMTP username
	assert.Equal(t, "notify@example.com", cfg.ContactEmail)
}

func TestNewSMTPConfig_MissingCredentials(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")

	_, err := NewSMTPConfig()
	assert.Error(t, err)
}
