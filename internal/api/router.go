// Package api provides the HTTP API for Wanderdesk.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api/handler"
	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
	"github.com/wanderdesk/wanderdesk/internal/flights"
	"github.com/wanderdesk/wanderdesk/internal/itinerary"
	"github.com/wanderdesk/wanderdesk/internal/places"
	"github.com/wanderdesk/wanderdesk/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	ItineraryService *itinerary.Service
	PlacesService    *places.Service
	FlightsService   *flights.Service
	Registry         *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "wanderdesk-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)
	itineraryHandler := handler.NewItineraryHandler(cfg.ItineraryService)
	placesHandler := handler.NewPlacesHandler(cfg.PlacesService)
	flightsHandler := handler.NewFlightsHandler(cfg.FlightsService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)     // 100 req/min
	sessionRateLimit := middleware.RateLimitBySession(middleware.StandardRateLimit) // 100 req/min per session

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Planner endpoints - everything below is scoped to a planner session
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.Session)

			// Flight search proxies a paid upstream API - strict rate limiting
			r.With(expensiveRateLimit).Get("/flights", flightsHandler.SearchFlights)

			// Place lookup - standard rate limiting
			r.With(standardRateLimit).Get("/search-places", placesHandler.SearchPlaces)

			// Itinerary - session-based rate limiting
			r.Route("/itinerary", func(r chi.Router) {
				r.Use(sessionRateLimit)
				r.Get("/", itineraryHandler.GetItinerary)
				r.Put("/", itineraryHandler.UpdateTrip)
				r.Put("/dates", itineraryHandler.SetDates)
				r.Get("/totals", itineraryHandler.GetTotals)
				r.Post("/activities/move", itineraryHandler.MoveActivity)

				r.Route("/days", func(r chi.Router) {
					r.Post("/", itineraryHandler.AddDay)
					r.Route("/{day}", func(r chi.Router) {
						r.Post("/activities", itineraryHandler.AddActivity)
						r.Patch("/activities/{activityId}", itineraryHandler.EditActivity)
						r.Delete("/activities/{activityId}", itineraryHandler.DeleteActivity)
						r.Post("/places", itineraryHandler.AddFromPlace)
					})
				})
			})
		})
	})

	return r
}
