package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// DefaultLocation is used when a weather query names neither a place nor
// coordinates (Lahore, Pakistan).
var DefaultLocation = models.Coordinates{Latitude: 31.525309, Longitude: 74.299928}

// Client defines the backend weather API used by the dashboard
type Client interface {
	// Autocomplete returns location suggestions for a partial place name
	Autocomplete(ctx context.Context, query string) ([]models.Location, error)

	// Weather fetches current conditions and the hourly series
	Weather(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error)

	// Historical fetches the hourly temperature series for a date range
	Historical(ctx context.Context, query models.HistoricalQuery) (*models.HistoricalReport, error)
}

// APIError is a non-success response from the backend. Message is already
// suitable for display.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a failure to reach the backend at all
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrInvalidQuery is returned before any request is made when a query cannot
// be sent.
var ErrInvalidQuery = errors.New("invalid query")

// IsNetworkError reports whether err came from the transport rather than from
// a backend response.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func invalidQuery(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
