package resilience

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the provider circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client for breaker naming and status reporting.
	Name string

	// Timeout is the per-attempt HTTP timeout. Default 10s.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts. Default 3.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval. Default 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff interval. Default 5s.
	MaxInterval time.Duration

	// Breaker overrides the default circuit breaker configuration.
	Breaker *BreakerConfig
}

// DefaultClientConfig returns sensible defaults for the resilient client.
func DefaultClientConfig(name string) ClientConfig {
	breaker := DefaultBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Breaker:         &breaker,
	}
}

// httpResult carries a response through the circuit breaker.
type httpResult struct {
	resp *http.Response
}

// Client is an HTTP client with circuit breaker and retry logic.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; repeated failures open the circuit so a dead
// provider fails fast instead of tying up request handlers.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*httpResult]
	config     ClientConfig
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	breakerCfg := DefaultBreakerConfig(cfg.Name)
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker(breakerCfg),
		config:     cfg,
	}
}

// Do executes an HTTP request with circuit breaker protection and retries.
// Returns ErrCircuitOpen immediately while the circuit is open. The caller
// is responsible for closing the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries are bounded by MaxRetries below

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		result, err := c.breaker.Execute(func() (*httpResult, error) {
			resp, doErr := c.httpClient.Do(req.Clone(ctx))
			if doErr != nil {
				return nil, doErr
			}
			// 5xx responses count as breaker failures and are retried.
			if resp.StatusCode >= 500 {
				return &httpResult{resp: resp}, &serverError{status: resp.StatusCode}
			}
			return &httpResult{resp: resp}, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if result != nil && result.resp != nil {
				lastResp = result.resp
			}
			return err
		}

		lastResp = result.resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		// A 5xx that exhausted retries still has a usable response.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	return lastResp, nil
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Counts returns the current circuit breaker counts.
func (c *Client) Counts() gobreaker.Counts {
	return c.breaker.Counts()
}

type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.status, http.StatusText(e.status))
}
