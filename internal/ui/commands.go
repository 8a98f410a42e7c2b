package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/backend"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// fetchSuggestions runs one autocomplete lookup in the background
func fetchSuggestions(client backend.Client, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := client.Autocomplete(context.Background(), query)
		return suggestionsFetchedMsg{seq: seq, query: query, results: results, err: err}
	}
}

// fetchWeather loads weather in the background
func fetchWeather(client backend.Client, seq uint64, query models.WeatherQuery) tea.Cmd {
	return func() tea.Msg {
		report, err := client.Weather(context.Background(), query)
		return weatherFetchedMsg{seq: seq, report: report, err: err}
	}
}

// fetchHistorical loads the historical series in the background
func fetchHistorical(client backend.Client, seq uint64, query models.HistoricalQuery) tea.Cmd {
	return func() tea.Msg {
		report, err := client.Historical(context.Background(), query)
		return historicalFetchedMsg{seq: seq, report: report, err: err}
	}
}

// locate asks the locator for a position, bounded by timeout
func locate(locator geolocation.Locator, timeout time.Duration, manual bool) tea.Cmd {
	return func() tea.Msg {
		coords, err := geolocation.LocateWithTimeout(context.Background(), locator, timeout)
		return locatedMsg{coords: coords, manual: manual, err: err}
	}
}

// expireBanner dismisses banner id after d
func expireBanner(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerExpiredMsg{id: id}
	})
}
