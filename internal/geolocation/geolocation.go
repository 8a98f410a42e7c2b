// Package geolocation resolves the user's approximate position.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/resilience"
)

const (
	// DefaultIPLookupURL is the ip-api.com endpoint restricted to the fields we read
	DefaultIPLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

	// DefaultTimeout bounds a single locate call
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrUnsupported is returned when no position source is configured
	ErrUnsupported = errors.New("geolocation is not supported")

	// ErrLookupFailed is returned when the position source answered without a position
	ErrLookupFailed = errors.New("geolocation lookup failed")
)

// Locator resolves the current position
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// IPLocator estimates the position from the public IP address
type IPLocator struct {
	url        string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewIPLocator creates an IPLocator. An empty url uses DefaultIPLookupURL.
func NewIPLocator(url string, timeout time.Duration, logger zerolog.Logger) *IPLocator {
	if url == "" {
		url = DefaultIPLookupURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg := resilience.DefaultClientConfig("geolocation")
	cfg.Timeout = timeout
	cfg.DisableRetries = true
	cfg.Logger = logger

	return &IPLocator{
		url:        url,
		httpClient: resilience.NewClient(cfg),
		logger:     logger.With().Str("component", "geolocation").Logger(),
	}
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate queries the lookup service
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinates{}, fmt.Errorf("decoding response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: %s", ErrLookupFailed, body.Message)
	}

	coords := models.Coordinates{Latitude: body.Lat, Longitude: body.Lon}
	l.logger.Debug().Str("coordinates", coords.String()).Msg("located by ip")
	return coords, nil
}

// StaticLocator always reports the configured position
type StaticLocator struct {
	Coordinates models.Coordinates
}

// Locate returns the configured coordinates
func (s StaticLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return s.Coordinates, nil
}

// Disabled is a Locator for terminals with no position source
type Disabled struct{}

// Locate always fails with ErrUnsupported
func (Disabled) Locate(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, ErrUnsupported
}

// Mode names a Locator implementation in configuration
type Mode string

const (
	ModeIP     Mode = "ip"
	ModeStatic Mode = "static"
	ModeOff    Mode = "off"
)

// Options selects and configures a Locator
type Options struct {
	Mode    Mode
	URL     string
	Home    models.Coordinates
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New builds the Locator named by opts.Mode
func New(opts Options) (Locator, error) {
	switch opts.Mode {
	case ModeIP, "":
		return NewIPLocator(opts.URL, opts.Timeout, opts.Logger), nil
	case ModeStatic:
		return StaticLocator{Coordinates: opts.Home}, nil
	case ModeOff:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown geolocation mode %q", opts.Mode)
	}
}

// LocateWithTimeout runs l.Locate bounded by timeout
func LocateWithTimeout(ctx context.Context, l Locator, timeout time.Duration) (models.Coordinates, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return l.Locate(ctx)
}
