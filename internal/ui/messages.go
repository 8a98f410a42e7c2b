package ui

import (
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Message types for async operations

// suggestionsFetchedMsg is sent when an autocomplete lookup completes
type suggestionsFetchedMsg struct {
	seq     uint64
	query   string
	results []models.Location
	err     error
}

// weatherFetchedMsg is sent when a weather load completes
type weatherFetchedMsg struct {
	seq    uint64
	report *models.WeatherReport
	err    error
}

// historicalFetchedMsg is sent when a historical load completes
type historicalFetchedMsg struct {
	seq    uint64
	report *models.HistoricalReport
	err    error
}

// locatedMsg is sent when geolocation completes. manual is false for the
// lookup made at startup.
type locatedMsg struct {
	coords models.Coordinates
	manual bool
	err    error
}

// bannerExpiredMsg dismisses the banner with the same id
type bannerExpiredMsg struct {
	id int
}
