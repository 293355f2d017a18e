// Package resilience wraps outbound HTTP calls to upstream search providers
// with timeouts, retries, and a circuit breaker.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	// Name identifies the circuit breaker for logging and status reporting.
	Name string

	// MaxRequests is the number of probe requests allowed in half-open state.
	MaxRequests uint32

	// Timeout is the period of open state before switching to half-open.
	Timeout time.Duration

	// ReadyToTrip decides when to open the circuit. Defaults to
	// defaultReadyToTrip when nil.
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: defaultReadyToTrip,
	}
}

// defaultReadyToTrip opens the circuit once at least 5 requests have been
// made and half or more of them failed.
func defaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[*httpResult] {
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = defaultReadyToTrip
	}
	return gobreaker.NewCircuitBreaker[*httpResult](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.ReadyToTrip,
	})
}
