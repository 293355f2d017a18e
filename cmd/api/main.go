// Package main provides the entrypoint for the Wanderdesk API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api"
	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
	"github.com/wanderdesk/wanderdesk/internal/config"
	"github.com/wanderdesk/wanderdesk/internal/flights"
	"github.com/wanderdesk/wanderdesk/internal/itinerary"
	"github.com/wanderdesk/wanderdesk/internal/places"
	"github.com/wanderdesk/wanderdesk/internal/provider/resilience"
	"github.com/wanderdesk/wanderdesk/internal/provider/serpapi"
	"github.com/wanderdesk/wanderdesk/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wanderdesk-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Wanderdesk API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Initialize snapshot storage and itinerary service
	repo, err := itinerary.NewFileRepository(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to initialize snapshot storage")
	}
	log.Info().Str("dir", cfg.DataDir).Msg("snapshot storage initialized")

	itineraryService := itinerary.NewService(itinerary.ServiceConfig{
		Repository:    repo,
		Logger:        log,
		AutosaveDelay: cfg.AutosaveDelay,
	})
	defer itineraryService.Close()
	log.Info().Msg("itinerary service initialized")

	// Initialize upstream search provider
	if cfg.SearchAPIKey == "" {
		log.Warn().Msg("SEARCH_API_KEY not set - flight and place search will fail upstream")
	}

	registry := resilience.NewRegistry()
	searchClient := serpapi.NewClient(serpapi.ClientConfig{
		APIKey:   cfg.SearchAPIKey,
		BaseURL:  cfg.SearchBaseURL,
		Registry: registry,
		Logger:   log,
	})

	placesService := places.NewService(places.ServiceConfig{
		Provider: searchClient,
		Logger:   log,
		Timeout:  cfg.LookupTimeout,
	})
	log.Info().Msg("place lookup service initialized")

	flightsService := flights.NewService(searchClient, log)
	log.Info().Msg("flight search service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		ItineraryService: itineraryService,
		PlacesService:    placesService,
		FlightsService:   flightsService,
		Registry:         registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
