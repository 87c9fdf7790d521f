package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "primacli.db", cfg.DBPath)
	assert.Equal(t, 120*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshCheckInterval)
	assert.Equal(t, 60*time.Second, cfg.AccessTokenLookahead)
	assert.Equal(t, 1, cfg.CreatedBy)
	assert.False(t, cfg.Debug)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("PRIMA_API_BASE_URL", "https://reports.example.com")
	t.Setenv("PRIMA_HTTP_TIMEOUT", "5m")
	t.Setenv("PRIMA_CREATED_BY", "42")
	t.Setenv("PRIMA_DEBUG", "true")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://reports.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, 42, cfg.CreatedBy)
	assert.True(t, cfg.Debug)
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("PRIMA_HTTP_TIMEOUT", "not-a-duration")

	_, err := New()
	assert.Error(t, err)
}
