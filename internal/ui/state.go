package ui

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/units"
)

// ViewState is which of the three main content states is showing
type ViewState int

const (
	ViewLoading ViewState = iota // fetching weather
	ViewContent                  // weather (or the empty placeholder) is showing
	ViewError                    // a load failed; prior content stays beneath the banner
)

func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewContent:
		return "content"
	case ViewError:
		return "error"
	}
	return "unknown"
}

// Focus is the input that receives key presses
type Focus int

const (
	FocusSearch Focus = iota
	FocusStartDate
	FocusEndDate
	FocusHistory // the historical list scrolls
	focusCount
)

func (f Focus) next() Focus { return (f + 1) % focusCount }
func (f Focus) prev() Focus { return (f + focusCount - 1) % focusCount }

// HistoricalStatus describes the historical list zone
type HistoricalStatus int

const (
	HistoricalIdle HistoricalStatus = iota
	HistoricalLoading
	HistoricalLoaded
	HistoricalFailed
	HistoricalNetworkFailed
)

// banner is the transient error message. ID ties an expiry tick to the
// banner it was scheduled for.
type banner struct {
	ID      int
	Message string
}

// AppState is everything the dashboard knows besides widget state. All of
// it is mutated only from Update.
type AppState struct {
	// Active is the location weather and history are fetched for. Nil
	// until a location is selected, located, or echoed by the backend.
	Active *models.Coordinates

	// Baseline is the last fetched current temperature in Celsius
	Baseline units.Baseline

	View     ViewState
	Unit     units.Unit
	PastDays bool

	// Results is the latest autocomplete result set
	Results         []models.Location
	Highlight       int
	DropdownVisible bool

	// recent is the last non-empty result set. It survives selection so
	// Enter on a previously selected label reuses its coordinates.
	recent []models.Location

	Report       *models.WeatherReport
	ShowPastDays bool // toggle value when Report was loaded
	LoadedAt     time.Time

	Historical       *models.HistoricalReport
	HistoricalStatus HistoricalStatus

	Banner   banner
	Locating bool

	debounce        debouncer
	autocompleteSeq sequencer
	weatherSeq      sequencer
	historicalSeq   sequencer
}

// sequencer tags requests of one class so only the latest is applied
type sequencer struct {
	latest uint64
}

// Next returns the tag for a new request, superseding all earlier ones
func (s *sequencer) Next() uint64 {
	s.latest++
	return s.latest
}

// Invalidate makes every in-flight request stale
func (s *sequencer) Invalidate() {
	s.latest++
}

// IsLatest reports whether tag belongs to the most recent request
func (s sequencer) IsLatest(tag uint64) bool {
	return tag == s.latest
}
