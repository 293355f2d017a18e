package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdesk/wanderdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "APP_ENV", "SEARCH_API_KEY", "SEARCH_API_BASE_URL",
		"DATA_DIR", "AUTOSAVE_DELAY", "LOOKUP_TIMEOUT",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, time.Second, cfg.AutosaveDelay)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.False(t, cfg.TelemetryEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEARCH_API_KEY", "secret")
	t.Setenv("DATA_DIR", "/var/lib/wanderdesk")
	t.Setenv("AUTOSAVE_DELAY", "2s")
	t.Setenv("LOOKUP_TIMEOUT", "500ms")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "secret", cfg.SearchAPIKey)
	assert.Equal(t, "/var/lib/wanderdesk", cfg.DataDir)
	assert.Equal(t, 2*time.Second, cfg.AutosaveDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.LookupTimeout)
	assert.True(t, cfg.TelemetryEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-port")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("APP_PORT", "8080")
	t.Setenv("AUTOSAVE_DELAY", "soonish")
	_, err = config.Load()
	require.Error(t, err)
}
