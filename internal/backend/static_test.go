package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

func fixedStatic() *StaticClient {
	s := NewStaticClient()
	s.Zone = time.UTC
	s.Now = func() time.Time { return time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC) }
	return s
}

func TestStaticClient_Autocomplete(t *testing.T) {
	s := fixedStatic()

	results, err := s.Autocomplete(context.Background(), "lah")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Autocomplete(context.Background(), "l")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStaticClient_Weather(t *testing.T) {
	s := fixedStatic()

	report, err := s.Weather(context.Background(), models.WeatherQuery{PastDays: 2})
	require.NoError(t, err)
	assert.Equal(t, "Lahore", report.Location.Name)
	assert.Equal(t, "Pakistan", report.Location.Country)
	// Mar 8 through Mar 16
	assert.Equal(t, 9*24, report.Hourly.Len())
	assert.Equal(t, "2024-03-08T00:00", report.Hourly.Time[0])

	_, err = s.Weather(context.Background(), models.WeatherQuery{LocationName: "Atlantis"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Location not found", apiErr.Message)
}

func TestStaticClient_Historical(t *testing.T) {
	s := fixedStatic()

	report, err := s.Historical(context.Background(), models.HistoricalQuery{
		Coordinates: models.Coordinates{Latitude: 59.9, Longitude: 10.7},
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", report.Location.Name)
	assert.Equal(t, 72, report.Hourly.Len())
	assert.Empty(t, report.Hourly.WindSpeed10m)
}

func TestStaticClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixedStatic().Weather(ctx, models.WeatherQuery{})
	assert.True(t, IsNetworkError(err))
}
