package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/backend"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/units"
)

// loadWeather starts a weather load. A name wins over coordinates; with
// neither the default location is used without making it active. Explicit
// coordinates become active immediately.
func (m *Model) loadWeather(query models.WeatherQuery) tea.Cmd {
	switch {
	case strings.TrimSpace(query.LocationName) != "":
		query.Coordinates = nil
	case query.Coordinates != nil:
		active := *query.Coordinates
		m.state.Active = &active
	default:
		def := m.defaultLocation
		query.Coordinates = &def
	}
	if m.state.PastDays {
		query.PastDays = m.pastDays
	} else {
		query.PastDays = 0
	}

	m.state.View = ViewLoading
	seq := m.state.weatherSeq.Next()

	ev := m.logger.Info().Uint64("seq", seq).Int("past_days", query.PastDays)
	if query.Coordinates != nil {
		ev = ev.Str("coordinates", query.Coordinates.String())
	} else {
		ev = ev.Str("location", query.LocationName)
	}
	ev.Msg("loading weather")

	return tea.Batch(m.startSpinner(), fetchWeather(m.client, seq, query))
}

// reload fetches weather again for the active coordinates, or the default
// location if none are set yet
func (m *Model) reload() tea.Cmd {
	var query models.WeatherQuery
	if m.state.Active != nil {
		active := *m.state.Active
		query.Coordinates = &active
	}
	return m.loadWeather(query)
}

// handleWeather applies a weather result if it is still the latest
func (m *Model) handleWeather(msg weatherFetchedMsg) tea.Cmd {
	if !m.state.weatherSeq.IsLatest(msg.seq) {
		m.logger.Debug().Uint64("seq", msg.seq).Msg("dropping stale weather response")
		return nil
	}

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Uint64("seq", msg.seq).Msg("weather load failed")
		m.state.View = ViewError
		return m.showBanner(weatherErrorMessage(msg.err))
	}

	report := msg.report
	if report == nil {
		report = &models.WeatherReport{}
	}

	m.state.View = ViewContent
	m.state.Report = report
	m.state.ShowPastDays = m.state.PastDays
	m.state.LoadedAt = m.now()

	if coords, ok := report.Location.Coordinates(); ok {
		m.state.Active = &coords
	}
	if report.Current != nil {
		m.state.Baseline = units.NewBaseline(report.Current.Temperature2m)
	} else {
		m.state.Baseline = units.Baseline{}
	}

	m.clearBanner()
	m.logger.Info().Uint64("seq", msg.seq).Int("hours", report.Hourly.Len()).Msg("weather loaded")
	return nil
}

// weatherErrorMessage is the banner text for a failed weather load
func weatherErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return networkErrorMessage(err)
}

func networkErrorMessage(err error) string {
	return fmt.Sprintf("Network error: %s. Please make sure the server is running.", err.Error())
}

// loadHistorical validates the date range and starts a historical load.
// It does nothing while a previous load is still running.
func (m *Model) loadHistorical() tea.Cmd {
	if m.state.HistoricalStatus == HistoricalLoading {
		return nil
	}
	if m.state.Active == nil {
		return m.showBanner("Please search for a location first")
	}

	startText := strings.TrimSpace(m.startInput.Value())
	endText := strings.TrimSpace(m.endInput.Value())
	if startText == "" || endText == "" {
		return m.showBanner("Please select both start and end dates")
	}

	start, err := time.ParseInLocation(models.DateLayout, startText, m.loc)
	if err != nil {
		return m.showBanner("Dates must use the YYYY-MM-DD format")
	}
	end, err := time.ParseInLocation(models.DateLayout, endText, m.loc)
	if err != nil {
		return m.showBanner("Dates must use the YYYY-MM-DD format")
	}
	if start.After(end) {
		return m.showBanner("Start date must be before end date")
	}

	query := models.HistoricalQuery{
		Coordinates: *m.state.Active,
		StartDate:   startText,
		EndDate:     endText,
	}
	m.state.HistoricalStatus = HistoricalLoading
	seq := m.state.historicalSeq.Next()
	m.logger.Info().Uint64("seq", seq).Str("start", startText).Str("end", endText).Msg("loading historical data")

	return tea.Batch(m.startSpinner(), fetchHistorical(m.client, seq, query))
}

// handleHistorical applies a historical result if it is still the latest.
// Failures never change the main view state.
func (m *Model) handleHistorical(msg historicalFetchedMsg) tea.Cmd {
	if !m.state.historicalSeq.IsLatest(msg.seq) {
		m.logger.Debug().Uint64("seq", msg.seq).Msg("dropping stale historical response")
		return nil
	}

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Uint64("seq", msg.seq).Msg("historical load failed")
		var apiErr *backend.APIError
		if errors.As(msg.err, &apiErr) {
			m.state.HistoricalStatus = HistoricalFailed
			return m.showBanner(apiErr.Message)
		}
		m.state.HistoricalStatus = HistoricalNetworkFailed
		return m.showBanner(networkErrorMessage(msg.err))
	}

	m.state.HistoricalStatus = HistoricalLoaded
	m.state.Historical = msg.report
	m.refreshHistory()
	m.history.GotoTop()
	// a weather error banner belongs to the main view and keeps its timer
	if m.state.View != ViewError {
		m.clearBanner()
	}
	return nil
}

// locateManually starts a "use my location" lookup unless one is running
func (m *Model) locateManually() tea.Cmd {
	if m.state.Locating {
		return nil
	}
	m.state.Locating = true
	return tea.Batch(m.startSpinner(), locate(m.locator, m.geoTimeout, true))
}

// handleLocated applies a geolocation result. The startup lookup falls back
// to the default location silently; a manual lookup reports failures.
func (m *Model) handleLocated(msg locatedMsg) tea.Cmd {
	if !msg.manual {
		if msg.err != nil {
			m.logger.Info().Err(msg.err).Msg("geolocation unavailable, using default location")
			return m.loadWeather(models.WeatherQuery{})
		}
		coords := msg.coords
		return m.loadWeather(models.WeatherQuery{Coordinates: &coords})
	}

	m.state.Locating = false
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("manual geolocation failed")
		if errors.Is(msg.err, geolocation.ErrUnsupported) {
			return m.showBanner("Geolocation is not supported by your terminal")
		}
		return m.showBanner("Unable to retrieve your location")
	}

	m.searchInput.SetValue("")
	m.state.DropdownVisible = false
	m.state.debounce.Cancel()
	m.state.autocompleteSeq.Invalidate()

	coords := msg.coords
	return m.loadWeather(models.WeatherQuery{Coordinates: &coords})
}
