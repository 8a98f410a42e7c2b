package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// minQueryLength is the shortest trimmed query that triggers a lookup
const minQueryLength = 2

// handleSearchKey handles key presses while the search box is focused
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitSearch()

	case key.Matches(msg, m.keys.Dismiss):
		m.state.DropdownVisible = false
		return nil

	case key.Matches(msg, m.keys.Up):
		if m.state.DropdownVisible && m.state.Highlight > 0 {
			m.state.Highlight--
		}
		return nil

	case key.Matches(msg, m.keys.Down):
		if m.state.DropdownVisible && m.state.Highlight < len(m.state.Results)-1 {
			m.state.Highlight++
		}
		return nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.queryChanged())
}

// queryChanged reacts to an edit of the search box. Short queries hide and
// clear suggestions at once; longer ones re-arm the debouncer.
func (m *Model) queryChanged() tea.Cmd {
	query := strings.TrimSpace(m.searchInput.Value())
	if utf8.RuneCountInString(query) < minQueryLength {
		m.state.DropdownVisible = false
		m.state.Results = nil
		m.state.Highlight = 0
		m.state.debounce.Cancel()
		m.state.autocompleteSeq.Invalidate()
		return nil
	}
	return m.state.debounce.Arm(query)
}

// handleDebounceFired issues the lookup for the latest armed query
func (m *Model) handleDebounceFired(msg debounceFiredMsg) tea.Cmd {
	if !m.state.debounce.Fire(msg) {
		return nil
	}
	seq := m.state.autocompleteSeq.Next()
	m.logger.Debug().Uint64("seq", seq).Str("query", msg.query).Msg("autocomplete lookup")
	return fetchSuggestions(m.client, seq, msg.query)
}

// handleSuggestions applies a lookup result if it is still the latest
func (m *Model) handleSuggestions(msg suggestionsFetchedMsg) {
	if !m.state.autocompleteSeq.IsLatest(msg.seq) {
		m.logger.Debug().Uint64("seq", msg.seq).Str("query", msg.query).Msg("dropping stale suggestions")
		return
	}

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("query", msg.query).Msg("autocomplete lookup failed")
		m.state.DropdownVisible = false
		return
	}

	if len(msg.results) == 0 {
		m.state.Results = nil
		m.state.Highlight = 0
		m.state.DropdownVisible = false
		return
	}

	m.state.Results = msg.results
	m.state.Highlight = 0
	m.state.DropdownVisible = m.focus == FocusSearch
	m.state.recent = msg.results
}

// submitSearch handles Enter in the search box
func (m *Model) submitSearch() tea.Cmd {
	text := strings.TrimSpace(m.searchInput.Value())
	if text == "" {
		return m.showBanner("Please enter a location")
	}

	if len(m.state.Results) > 0 {
		return m.selectSuggestion(m.state.Highlight)
	}

	for _, loc := range m.state.recent {
		if loc.Label() == text {
			return m.selectLocation(loc)
		}
	}

	return m.loadWeather(models.WeatherQuery{LocationName: text})
}

// selectSuggestion selects row i of the current result set
func (m *Model) selectSuggestion(i int) tea.Cmd {
	if i < 0 || i >= len(m.state.Results) {
		return nil
	}
	return m.selectLocation(m.state.Results[i])
}

// selectLocation puts loc in the search box and loads its weather. Pending
// lookups are dropped so they cannot reopen the dropdown.
func (m *Model) selectLocation(loc models.Location) tea.Cmd {
	m.searchInput.SetValue(loc.Label())
	m.searchInput.CursorEnd()

	m.state.Results = nil
	m.state.Highlight = 0
	m.state.DropdownVisible = false
	m.state.debounce.Cancel()
	m.state.autocompleteSeq.Invalidate()

	coords := loc.Coordinates()
	m.logger.Info().Str("location", loc.Label()).Str("coordinates", coords.String()).Msg("location selected")
	return m.loadWeather(models.WeatherQuery{Coordinates: &coords})
}
