package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

var (
	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client in logs and prefixes its breaker names.
	Name string

	// Timeout bounds each individual HTTP attempt. Default: 30 seconds.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Default: 2. Set DisableRetries to make exactly one attempt.
	MaxRetries     uint64
	DisableRetries bool

	// InitialInterval and MaxInterval shape the exponential backoff.
	// Defaults: 200ms and 2s.
	InitialInterval time.Duration
	MaxInterval     time.Duration

	// RequestsPerSecond paces outgoing attempts. Zero means unlimited.
	RequestsPerSecond float64
	Burst             int

	// CircuitBreaker configures the per-endpoint breakers. Nil uses the defaults.
	CircuitBreaker *CircuitBreakerConfig

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper

	Logger zerolog.Logger
}

// DefaultClientConfig returns the defaults used for backend calls.
func DefaultClientConfig(name string) ClientConfig {
	cb := DefaultCircuitBreakerConfig()
	return ClientConfig{
		Name:            name,
		Timeout:         30 * time.Second,
		MaxRetries:      2,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		CircuitBreaker:  &cb,
		Logger:          zerolog.Nop(),
	}
}

// Client is an HTTP client with retry, circuit breaking and rate limiting.
// Network errors and 5xx responses are retried; anything else is returned to
// the caller as is. Each URL path gets its own breaker, which opens only on
// repeated transport failures.
type Client struct {
	httpClient *http.Client
	breakers   *breakerSet
	limiter    *rate.Limiter
	config     ClientConfig
	logger     zerolog.Logger
}

// NewClient creates a resilient client, filling unset fields with defaults.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 2 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig()
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}
	logger := cfg.Logger.With().Str("client", cfg.Name).Logger()
	if cbConfig.OnStateChange == nil {
		cbConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		breakers: newBreakerSet(cfg.Name, cbConfig),
		limiter:  limiter,
		config:   cfg,
		logger:   logger,
	}
}

// Do executes req using the request's context.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithContext(req.Context(), req)
}

// DoWithContext executes req with retries. When the attempts end in a 5xx,
// including when the endpoint's breaker opens part way, the last response is
// returned (not an error) so the caller can read the error payload.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0

	var policy backoff.BackOff = &backoff.StopBackOff{}
	if !c.config.DisableRetries {
		policy = backoff.WithMaxRetries(bo, c.config.MaxRetries)
	}
	policy = backoff.WithContext(policy, ctx)

	breaker := c.breakers.get(req.URL.Path)
	var lastResp *http.Response
	attempt := 0

	operation := func() error {
		attempt++
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(fmt.Errorf("rate limit wait canceled: %w", err))
			}
		}

		resp, err := breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if resp != nil && lastResp != nil && lastResp != resp {
			drain(lastResp)
			lastResp = nil
		}

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			c.logger.Debug().Err(err).Int("attempt", attempt).Str("url", req.URL.Redacted()).Msg("request attempt failed")
			return err
		}

		lastResp = resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}
	return lastResp, nil
}

// CircuitBreakerState reports the breaker state for a URL path.
func (c *Client) CircuitBreakerState(path string) gobreaker.State {
	return c.breakers.state(path)
}

// ServerError is a 5xx response treated as a failed attempt.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
