package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/weather-terminal/internal/units"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

const (
	emptyPlaceholder      = "Search for a location to see the weather."
	historicalPlaceholder = "Choose a date range and press Enter to load historical data."
	historicalEmpty       = "No historical data available for the selected date range."
	historicalFailed      = "Failed to load historical data. Please try again."
	historicalNetwork     = "Network error. Please try again."
	historicalLoading     = "Loading historical data..."
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.viewHeader(), m.viewControls())
	if m.state.DropdownVisible && len(m.state.Results) > 0 {
		sections = append(sections, m.viewDropdown())
	}
	if m.state.Banner.Message != "" {
		sections = append(sections, bannerStyle.Render("✗ "+m.state.Banner.Message))
	}
	sections = append(sections, "", m.viewMain(), m.viewHistorical(), m.viewHelp())

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) settings() viewmodel.Settings {
	return viewmodel.Settings{
		Unit:     m.state.Unit,
		PastDays: m.state.ShowPastDays,
		Now:      m.now().In(m.loc),
		Location: m.loc,
	}
}

// viewHeader renders the title, location and freshness line
func (m Model) viewHeader() string {
	title := titleStyle.Render("☀ Weather Terminal")

	var place string
	switch {
	case m.state.Report != nil && m.state.Report.Location != nil:
		place = m.state.Report.Location.Label()
	case m.state.Active != nil:
		place = m.state.Active.String()
	}
	if place == "" {
		return title
	}

	info := "📍 " + place
	if !m.state.LoadedAt.IsZero() {
		info += " • updated " + humanize.RelTime(m.state.LoadedAt, m.now(), "ago", "from now")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", mutedStyle.Render(info))
}

// viewControls renders the search box and the toggles
func (m Model) viewControls() string {
	style := inputStyle
	if m.focus == FocusSearch {
		style = focusedInputStyle
	}
	search := m.zones.Mark(zoneSearch, style.Render(m.searchInput.View()))

	unit := fmt.Sprintf("[%s]", m.state.Unit.Symbol())
	pastDays := mutedStyle.Render("past days: off")
	if m.state.PastDays {
		pastDays = toggleOnStyle.Render("past days: on")
	}
	locateLabel := "📍 my location"
	if m.state.Locating {
		locateLabel = m.spinner.View() + " locating..."
	}

	toggles := lipgloss.JoinVertical(lipgloss.Left,
		toggleOnStyle.Render(unit),
		pastDays,
		mutedStyle.Render(locateLabel),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, search, "  ", toggles)
}

// viewDropdown renders the suggestion rows, each a click zone
func (m Model) viewDropdown() string {
	rows := make([]string, 0, len(m.state.Results))
	for i, loc := range m.state.Results {
		line := fmt.Sprintf("%s  %s", loc.Name, mutedStyle.Render(loc.Country))
		style := suggestionStyle
		if i == m.state.Highlight {
			style = highlightedSuggestionStyle
			line = fmt.Sprintf("%s  %s", loc.Name, loc.Country)
		}
		rows = append(rows, m.zones.Mark(suggestionZone(i), style.Render(line)))
	}
	return dropdownStyle.Render(strings.Join(rows, "\n"))
}

// viewMain renders the zone selected by the view state
func (m Model) viewMain() string {
	if m.state.View == ViewLoading {
		return sectionBoxStyle.Render(fmt.Sprintf("%s Loading weather data...", m.spinner.View()))
	}
	if m.state.Report == nil {
		return sectionBoxStyle.Render(mutedStyle.Render(emptyPlaceholder))
	}

	d := viewmodel.Build(m.state.Report, m.state.Baseline, m.settings())

	var top []string
	if d.Current != nil {
		top = append(top, renderCurrent(*d.Current))
	}
	if len(d.Hourly) > 0 {
		top = append(top, renderHourly(d.Hourly, m.state.Unit))
	}
	if len(top) == 0 {
		return sectionBoxStyle.Render(mutedStyle.Render(emptyPlaceholder))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, top...)
	if len(d.PastDays) > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, renderPastDays(d.PastDays))
	}
	return out
}

func renderCurrent(c viewmodel.Current) string {
	var b strings.Builder
	b.WriteString(boxHeaderStyle.Render("Now"))
	b.WriteString("\n")
	b.WriteString(bigTempStyle.Render(c.Icon + " " + c.Temperature + c.Unit))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(c.Condition))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Wind: ") + valueStyle.Render(c.Wind) + "\n")
	b.WriteString(labelStyle.Render("Humidity: ") + valueStyle.Render(c.Humidity) + "\n")
	b.WriteString(labelStyle.Render("Precipitation: ") + valueStyle.Render(c.Precipitation) + "\n\n")
	b.WriteString(mutedStyle.Render(c.Clock))
	return sectionBoxStyle.Render(b.String())
}

// renderHourly renders the 24 hour strip in two columns under a sparkline
func renderHourly(rows []viewmodel.HourlyRow, u units.Unit) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-8s %5s %4s %5s km/h", r.Time, r.Temperature, r.Humidity, r.Wind))
	}

	half := (len(lines) + 1) / 2
	left := strings.Join(lines[:half], "\n")
	right := strings.Join(lines[half:], "\n")
	table := lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)

	var b strings.Builder
	b.WriteString(boxHeaderStyle.Render("Next 24 hours"))
	b.WriteString("\n")
	b.WriteString(temperatureSparkline(rows, u))
	b.WriteString("\n\n")
	b.WriteString(table)
	return sectionBoxStyle.Render(b.String())
}

// temperatureSparkline charts the strip's temperatures. Values are shifted
// so the coldest hour sits on the baseline.
func temperatureSparkline(rows []viewmodel.HourlyRow, u units.Unit) string {
	values := make([]float64, len(rows))
	low := 0.0
	for i, r := range rows {
		values[i] = float64(units.Convert(r.Celsius, u))
		if i == 0 || values[i] < low {
			low = values[i]
		}
	}
	for i := range values {
		values[i] = values[i] - low + 1
	}

	sl := sparkline.New(len(values), 3)
	sl.PushAll(values)
	sl.Draw()
	return lipgloss.NewStyle().Foreground(colorWarning).Render(sl.View())
}

func renderPastDays(rows []viewmodel.DayRow) string {
	var b strings.Builder
	b.WriteString(boxHeaderStyle.Render("Past days"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-12s %-14s %s  %s",
			labelStyle.Render(r.Label), mutedStyle.Render(r.Humidity), valueStyle.Render(r.Average), mutedStyle.Render(r.Details)))
	}
	return sectionBoxStyle.Render(b.String())
}

// viewHistorical renders the date range inputs and the historical list
func (m Model) viewHistorical() string {
	start := inputStyle
	if m.focus == FocusStartDate {
		start = focusedInputStyle
	}
	end := inputStyle
	if m.focus == FocusEndDate {
		end = focusedInputStyle
	}

	inputs := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render("From "),
		m.zones.Mark(zoneStartDate, start.Render(m.startInput.View())),
		labelStyle.Render("  To "),
		m.zones.Mark(zoneEndDate, end.Render(m.endInput.View())),
	)

	var body string
	switch m.state.HistoricalStatus {
	case HistoricalLoading:
		body = m.spinner.View() + " " + historicalLoading
	case HistoricalFailed:
		body = mutedStyle.Render(historicalFailed)
	case HistoricalNetworkFailed:
		body = mutedStyle.Render(historicalNetwork)
	case HistoricalLoaded:
		rows := viewmodel.BuildHistorical(m.state.Historical, m.settings())
		if len(rows) == 0 {
			body = mutedStyle.Render(historicalEmpty)
			break
		}
		body = m.zones.Mark(zoneHistory, m.history.View()) + "\n" + mutedStyle.Render(m.historyFooter(len(rows)))
	default:
		body = mutedStyle.Render(historicalPlaceholder)
	}

	box := sectionBoxStyle
	if m.focus == FocusHistory {
		box = box.BorderForeground(colorPrimary)
	}
	return box.Render(boxHeaderStyle.Render("Historical") + "\n" + inputs + "\n\n" + body)
}

func (m Model) viewHelp() string {
	bindings := m.keys.helpLine()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
