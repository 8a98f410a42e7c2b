package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debouncer delays autocomplete lookups until typing pauses. Every Arm
// bumps the generation, so only the tick from the last Arm is honored.
type debouncer struct {
	delay      time.Duration
	generation uint64
	pending    bool
}

type debounceFiredMsg struct {
	generation uint64
	query      string
}

// Arm schedules a firing for query after the delay, replacing any pending one
func (d *debouncer) Arm(query string) tea.Cmd {
	d.generation++
	d.pending = true
	gen := d.generation
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceFiredMsg{generation: gen, query: query}
	})
}

// Cancel drops any pending firing
func (d *debouncer) Cancel() {
	d.generation++
	d.pending = false
}

// Fire reports whether msg comes from the latest Arm and, if so, consumes it
func (d *debouncer) Fire(msg debounceFiredMsg) bool {
	if !d.pending || msg.generation != d.generation {
		return false
	}
	d.pending = false
	return true
}
