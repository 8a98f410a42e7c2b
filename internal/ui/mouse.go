package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Clickable zone ids
const (
	zoneSearch    = "search"
	zoneStartDate = "start-date"
	zoneEndDate   = "end-date"
)

func suggestionZone(i int) string {
	return fmt.Sprintf("suggestion-%d", i)
}

// handleMouse selects clicked suggestions and moves focus to clicked
// inputs. Any other click hides the dropdown. The wheel scrolls the
// historical list under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.IsWheel() {
		if !m.inZone(zoneHistory, msg) {
			return nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.state.DropdownVisible {
		for i := range m.state.Results {
			if m.inZone(suggestionZone(i), msg) {
				return m.selectSuggestion(i)
			}
		}
	}

	switch {
	case m.inZone(zoneSearch, msg):
		if m.focus != FocusSearch {
			return m.setFocus(FocusSearch)
		}
		return nil
	case m.inZone(zoneStartDate, msg):
		return m.setFocus(FocusStartDate)
	case m.inZone(zoneEndDate, msg):
		return m.setFocus(FocusEndDate)
	case m.inZone(zoneHistory, msg):
		return m.setFocus(FocusHistory)
	}

	m.state.DropdownVisible = false
	return nil
}

func (m Model) inZone(id string, msg tea.MouseMsg) bool {
	if m.zones == nil {
		return false
	}
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}
