// Package serpapi provides a client for the SerpApi search API, which
// backs both the place lookup and the flight search proxy.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api/models"
	"github.com/wanderdesk/wanderdesk/internal/flights"
	"github.com/wanderdesk/wanderdesk/internal/provider/resilience"
)

const (
	// ProviderName identifies this search provider.
	ProviderName = "serpapi"

	// DefaultBaseURL is the SerpApi base URL.
	DefaultBaseURL = "https://serpapi.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// currency is fixed server-side; clients cannot override it.
	currency = "USD"
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the SerpApi client.
type ClientConfig struct {
	// APIKey is the server-held SerpApi key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to SerpApi).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a SerpApi client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new SerpApi client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		resilient := resilience.NewClient(clientCfg)
		if cfg.Registry != nil {
			cfg.Registry.Register(ProviderName, resilient)
		}
		httpClient = resilient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SearchLocal returns places near the given coordinates matching the query.
func (c *Client) SearchLocal(ctx context.Context, lat, lng float64, query string) ([]models.Place, error) {
	params := url.Values{}
	params.Set("engine", "google_local")
	params.Set("q", query)
	params.Set("ll", fmt.Sprintf("@%.6f,%.6f,14z", lat, lng))
	params.Set("api_key", c.apiKey)

	c.logger.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Str("query", query).
		Msg("requesting local results from SerpApi")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var localResp localSearchResponse
	if err := json.Unmarshal(body, &localResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]models.Place, 0, len(localResp.LocalResults))
	for _, r := range localResp.LocalResults {
		place := models.Place{
			Name:      r.Title,
			Address:   r.Address,
			Rating:    r.Rating,
			OrderLink: r.Links.Order,
		}
		if r.GPSCoordinates != nil {
			place.Coordinates = &models.Coordinates{
				Lat: r.GPSCoordinates.Latitude,
				Lng: r.GPSCoordinates.Longitude,
			}
		}
		results = append(results, place)
	}

	c.logger.Debug().
		Int("result_count", len(results)).
		Msg("received local results from SerpApi")

	return results, nil
}

// SearchFlights executes a flight search and returns the raw upstream
// JSON body verbatim. The currency is fixed server-side.
func (c *Client) SearchFlights(ctx context.Context, q flights.Query) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("api_key", c.apiKey)
	params.Set("currency", currency)
	params.Set("hl", "en")

	setIfPresent(params, "departure_id", q.DepartureID)
	setIfPresent(params, "arrival_id", q.ArrivalID)
	setIfPresent(params, "outbound_date", q.OutboundDate)
	setIfPresent(params, "return_date", q.ReturnDate)
	setIfPresent(params, "adults", q.Adults)
	setIfPresent(params, "travel_class", q.TravelClass)
	setIfPresent(params, "children", q.Children)
	setIfPresent(params, "infants_in_seat", q.InfantsInSeat)
	setIfPresent(params, "airlines", q.Airlines)
	setIfPresent(params, "nonstop", q.Nonstop)

	return c.get(ctx, params)
}

// get executes a GET /search call and returns the response body.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	c.recordSuccess()
	return body, nil
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
