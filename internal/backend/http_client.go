package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/resilience"
)

const userAgent = "WeatherTerminal/1.0 (github.com/ngmaloney/weather-terminal)"

// HTTPConfig configures an HTTPClient
type HTTPConfig struct {
	BaseURL           string
	DefaultLocation   models.Coordinates
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            zerolog.Logger

	// Transport overrides the resilient client (tests).
	Transport *resilience.Client
}

// HTTPClient implements Client against the weather backend over HTTP
type HTTPClient struct {
	baseURL         string
	defaultLocation models.Coordinates
	httpClient      *resilience.Client
	logger          zerolog.Logger
}

// NewHTTPClient creates a backend client for cfg.BaseURL
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	httpClient := cfg.Transport
	if httpClient == nil {
		rc := resilience.DefaultClientConfig("backend")
		if cfg.Timeout > 0 {
			rc.Timeout = cfg.Timeout
		}
		rc.RequestsPerSecond = cfg.RequestsPerSecond
		rc.Burst = 3
		rc.Logger = cfg.Logger
		httpClient = resilience.NewClient(rc)
	}

	def := cfg.DefaultLocation
	if def == (models.Coordinates{}) {
		def = DefaultLocation
	}

	return &HTTPClient{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		defaultLocation: def,
		httpClient:      httpClient,
		logger:          cfg.Logger.With().Str("component", "backend").Logger(),
	}
}

type autocompleteResponse struct {
	Results []models.Location `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Autocomplete queries /api/autocomplete. The query is sent trimmed.
func (c *HTTPClient) Autocomplete(ctx context.Context, query string) ([]models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidQuery("autocomplete query cannot be empty")
	}

	params := url.Values{}
	params.Set("q", query)

	var out autocompleteResponse
	if err := c.get(ctx, "/api/autocomplete", params, &out, weatherFallback); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Weather queries /api/weather. A location name takes precedence over
// coordinates, and a query with neither asks for the default location.
func (c *HTTPClient) Weather(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error) {
	params := WeatherParams(query, c.defaultLocation)

	var out models.WeatherReport
	if err := c.get(ctx, "/api/weather", params, &out, weatherFallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// Historical queries /api/historical for an inclusive date range
func (c *HTTPClient) Historical(ctx context.Context, query models.HistoricalQuery) (*models.HistoricalReport, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return nil, invalidQuery("start and end dates are required")
	}

	params := url.Values{}
	params.Set("latitude", formatCoordinate(query.Coordinates.Latitude))
	params.Set("longitude", formatCoordinate(query.Coordinates.Longitude))
	params.Set("start_date", query.StartDate)
	params.Set("end_date", query.EndDate)

	var out models.HistoricalReport
	if err := c.get(ctx, "/api/historical", params, &out, historicalFallback); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeatherParams builds the query string for /api/weather
func WeatherParams(query models.WeatherQuery, def models.Coordinates) url.Values {
	params := url.Values{}
	switch {
	case strings.TrimSpace(query.LocationName) != "":
		params.Set("location", strings.TrimSpace(query.LocationName))
	case query.Coordinates != nil:
		params.Set("latitude", formatCoordinate(query.Coordinates.Latitude))
		params.Set("longitude", formatCoordinate(query.Coordinates.Longitude))
	default:
		params.Set("latitude", formatCoordinate(def.Latitude))
		params.Set("longitude", formatCoordinate(def.Longitude))
	}
	if query.PastDays > 0 {
		params.Set("past_days", strconv.Itoa(query.PastDays))
	}
	return params
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fallbackFunc produces the message for an error body that decoded but
// carried no message.
type fallbackFunc func(status int) string

func weatherFallback(status int) string {
	return fmt.Sprintf("Failed to load weather data (%d)", status)
}

func historicalFallback(int) string {
	return "Failed to load historical data"
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any, fallback fallbackFunc) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("backend request failed")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, fallback)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns a non-success response into an APIError. A body with an
// "error" field supplies the message; a JSON body without one uses fallback;
// a body that is not JSON reports the HTTP status line.
func decodeError(resp *http.Response, fallback fallbackFunc) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	var payload errorResponse
	if err != nil || json.Unmarshal(body, &payload) != nil {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return apiErr
	}

	if payload.Error == "" {
		apiErr.Message = fallback(resp.StatusCode)
		return apiErr
	}
	apiErr.Message = payload.Error
	return apiErr
}
