package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

const zoneHistory = "history"

// historyWidth fits the historical list inside its bordered box
func historyWidth(termWidth int) int {
	if termWidth <= 0 {
		return 80
	}
	return max(termWidth-6, 56)
}

// historyHeight gives the historical list a third of the terminal
func historyHeight(termHeight int) int {
	if termHeight <= 0 {
		return 10
	}
	return max(termHeight/3, 5)
}

// historyLines renders one line per aggregated day, oldest first
func historyLines(rows []viewmodel.HistoricalRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-30s %6s  %s", r.Label, r.Average, mutedStyle.Render(r.Range)))
	}
	return strings.Join(lines, "\n")
}

// refreshHistory rebuilds the list content after a load, a unit change or
// a resize. Short lists shrink the viewport; the scroll offset is kept where
// the content allows it.
func (m *Model) refreshHistory() {
	if m.state.HistoricalStatus != HistoricalLoaded {
		m.history.SetContent("")
		return
	}
	rows := viewmodel.BuildHistorical(m.state.Historical, m.settings())
	m.history.Height = min(historyHeight(m.height), max(len(rows), 1))
	m.history.SetContent(historyLines(rows))
}

// historyFooter says how much of the list is on screen
func (m Model) historyFooter(days int) string {
	if days <= m.history.Height {
		return fmt.Sprintf("%d days", days)
	}
	hint := "tab here to scroll"
	if m.focus == FocusHistory {
		hint = "↑/↓ pgup/pgdn to scroll"
	}
	return fmt.Sprintf("%d days • %.0f%% • %s", days, m.history.ScrollPercent()*100, hint)
}
