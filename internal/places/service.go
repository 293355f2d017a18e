// Package places provides nearby place lookup for the planner UI.
// Results are transient: they are never persisted as part of an itinerary.
package places

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api/models"
)

// DefaultTimeout bounds a single lookup call so a slow provider cannot
// leave the client stuck loading.
const DefaultTimeout = 5 * time.Second

// QueryForFilter maps a UI category filter onto an upstream search query.
func QueryForFilter(filter string) string {
	switch filter {
	case "attractions":
		return "tourist attraction"
	case "hotels":
		return "hotel"
	default:
		return "restaurant"
	}
}

// Provider defines the interface for place search providers.
type Provider interface {
	// SearchLocal returns places near the given coordinates matching the
	// category query.
	SearchLocal(ctx context.Context, lat, lng float64, query string) ([]models.Place, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the place lookup service.
type ServiceConfig struct {
	// Provider is the place search provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Timeout bounds a single lookup (default: DefaultTimeout).
	Timeout time.Duration
}

// Service performs place lookups. Every failure mode (network error,
// upstream rejection, malformed payload, timeout) is logged and surfaced
// as an empty result set; the UI shows "no results", never an error dialog.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	timeout  time.Duration

	mu     sync.Mutex
	seq    map[string]uint64
	latest map[string][]models.Place
}

// NewService creates a new place lookup service.
func NewService(cfg ServiceConfig) *Service {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		timeout:  timeout,
		seq:      make(map[string]uint64),
		latest:   make(map[string][]models.Place),
	}
}

// Search looks up places near the given coordinates for a session.
// Lookups for the same session may overlap when the user switches filters
// quickly; each call takes a token, and a response whose token has been
// superseded does not overwrite the newer results; the caller gets the
// newest results instead.
func (s *Service) Search(ctx context.Context, sessionKey string, lat, lng float64, query string) []models.Place {
	s.mu.Lock()
	s.seq[sessionKey]++
	token := s.seq[sessionKey]
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.provider.SearchLocal(ctx, lat, lng, query)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("query", query).
			Msg("place lookup failed, returning empty results")
		results = []models.Place{}
	}
	if results == nil {
		results = []models.Place{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq[sessionKey] {
		// A newer lookup finished (or started) while this one was in
		// flight. Keep the newer state.
		s.logger.Debug().
			Str("query", query).
			Msg("stale lookup response discarded")
		if newer, ok := s.latest[sessionKey]; ok {
			return newer
		}
		return results
	}

	s.latest[sessionKey] = results
	return results
}

// Latest returns the most recent results for a session, if any.
func (s *Service) Latest(sessionKey string) ([]models.Place, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results, ok := s.latest[sessionKey]
	return results, ok
}
