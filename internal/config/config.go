// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the API server.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// SearchAPIKey is the server-held key for the upstream search API.
	// Required for the flight proxy and place lookup endpoints.
	SearchAPIKey string

	// SearchBaseURL overrides the upstream search API base URL (tests).
	SearchBaseURL string

	// DataDir is the directory for persisted itinerary snapshots.
	DataDir string

	// AutosaveDelay is the quiescence window before a mutated itinerary
	// is written out.
	AutosaveDelay time.Duration

	// LookupTimeout bounds a single place lookup call.
	LookupTimeout time.Duration

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export.
	TelemetryEnabled bool
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is the normal case in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("APP_PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		SearchAPIKey:     os.Getenv("SEARCH_API_KEY"),
		SearchBaseURL:    os.Getenv("SEARCH_API_BASE_URL"),
		DataDir:          getEnv("DATA_DIR", "data"),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}

	var err error
	cfg.AutosaveDelay, err = getDuration("AUTOSAVE_DELAY", time.Second)
	if err != nil {
		return nil, err
	}

	cfg.LookupTimeout, err = getDuration("LOOKUP_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid APP_PORT %q: %w", cfg.Port, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
