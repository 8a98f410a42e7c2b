// Package resilience wraps outbound HTTP calls with retries, per-endpoint
// circuit breakers and request pacing.
package resilience

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures the breakers a Client opens per endpoint.
type CircuitBreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts periodically. Zero disables it.
	Interval time.Duration

	// Timeout is how long a breaker stays open before going half-open.
	Timeout time.Duration

	// ReadyToTrip decides when to open. Nil means DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange receives the breaker name, "<client> <path>".
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns the configuration used for backend calls.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens after 5 consecutive unreachable attempts.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	return counts.ConsecutiveFailures >= 5
}

// reachable reports whether err still means the server answered. A 5xx
// carries a payload for the caller and is not held against the endpoint.
func reachable(err error) bool {
	var serverErr *ServerError
	return err == nil || errors.As(err, &serverErr)
}

// breakerSet lazily creates one breaker per endpoint path so a failing
// endpoint never blocks its neighbours.
type breakerSet struct {
	client string
	config CircuitBreakerConfig

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerSet(client string, cfg CircuitBreakerConfig) *breakerSet {
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = DefaultReadyToTrip
	}
	return &breakerSet{
		client:   client,
		config:   cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker[*http.Response]),
	}
}

func (s *breakerSet) get(path string) *gobreaker.CircuitBreaker[*http.Response] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[path]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:          s.client + " " + path,
		MaxRequests:   s.config.MaxRequests,
		Interval:      s.config.Interval,
		Timeout:       s.config.Timeout,
		ReadyToTrip:   s.config.ReadyToTrip,
		OnStateChange: s.config.OnStateChange,
		IsSuccessful:  reachable,
	})
	s.breakers[path] = cb
	return cb
}

// state reports the breaker state for path; unseen paths are closed.
func (s *breakerSet) state(path string) gobreaker.State {
	s.mu.Lock()
	cb, ok := s.breakers[path]
	s.mu.Unlock()
	if !ok {
		return gobreaker.StateClosed
	}
	return cb.State()
}
