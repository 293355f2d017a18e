// Package flights proxies flight searches to the upstream search API.
// The upstream response body is passed through verbatim; the server only
// contributes the API key and a fixed currency.
package flights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api/models"
)

// Query holds the flight search parameters accepted from the client.
// Field names mirror the public query parameters.
type Query struct {
	DepartureID   string
	ArrivalID     string
	OutboundDate  string
	ReturnDate    string
	Adults        string
	TravelClass   string
	Children      string
	InfantsInSeat string
	Airlines      string
	Nonstop       string
}

// Provider defines the interface for flight search providers.
type Provider interface {
	// SearchFlights executes a flight search and returns the raw
	// upstream JSON body.
	SearchFlights(ctx context.Context, q Query) (json.RawMessage, error)

	// Name returns the provider name for logging.
	Name() string
}

// ValidationError carries field-level validation failures.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Service proxies flight searches.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new flight search service.
func NewService(provider Provider, logger zerolog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Search validates the query and forwards it upstream, returning the
// upstream JSON verbatim.
func (s *Service) Search(ctx context.Context, q Query) (json.RawMessage, error) {
	var errs []models.FieldError
	if q.DepartureID == "" {
		errs = append(errs, models.FieldError{Field: "departure_id", Message: "is required"})
	}
	if q.ArrivalID == "" {
		errs = append(errs, models.FieldError{Field: "arrival_id", Message: "is required"})
	}
	if q.OutboundDate == "" {
		errs = append(errs, models.FieldError{Field: "outbound_date", Message: "is required"})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	body, err := s.provider.SearchFlights(ctx, q)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("departure", q.DepartureID).
			Str("arrival", q.ArrivalID).
			Msg("flight search failed")
		return nil, fmt.Errorf("searching flights: %w", err)
	}

	return body, nil
}
