package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"github.com/ngmaloney/weather-terminal/internal/backend"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// DefaultDebounce is the quiet period before a search lookup is sent
const DefaultDebounce = 300 * time.Millisecond

// Options wires the dashboard to its collaborators
type Options struct {
	Client  backend.Client
	Locator geolocation.Locator
	Logger  zerolog.Logger

	// DefaultLocation is loaded when nothing else is known
	DefaultLocation models.Coordinates

	// PastDays is the history length requested while past days are shown
	PastDays int

	Debounce           time.Duration
	ErrorTimeout       time.Duration
	GeolocationTimeout time.Duration

	// Now and Zone are the clock and the zone hourly stamps are read in.
	// Defaults are time.Now and time.Local.
	Now  func() time.Time
	Zone *time.Location
}

// Model represents the application's state
type Model struct {
	state  AppState
	focus  Focus
	width  int
	height int

	// Inputs
	searchInput textinput.Model
	startInput  textinput.Model
	endInput    textinput.Model

	// history scrolls the historical rows
	history viewport.Model

	spinner  spinner.Model
	spinning bool
	keys     keyMap
	zones    *zone.Manager

	// Collaborators
	client          backend.Client
	locator         geolocation.Locator
	logger          zerolog.Logger
	defaultLocation models.Coordinates
	pastDays        int
	errorTimeout    time.Duration
	geoTimeout      time.Duration
	now             func() time.Time
	loc             *time.Location
	bannerSeq       int
}

// NewModel creates a new dashboard model
func NewModel(opts Options) Model {
	if opts.Client == nil {
		opts.Client = backend.NewStaticClient()
	}
	if opts.Locator == nil {
		opts.Locator = geolocation.Disabled{}
	}
	if opts.DefaultLocation == (models.Coordinates{}) {
		opts.DefaultLocation = backend.DefaultLocation
	}
	if opts.PastDays <= 0 {
		opts.PastDays = 10
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.ErrorTimeout <= 0 {
		opts.ErrorTimeout = 5 * time.Second
	}
	if opts.GeolocationTimeout <= 0 {
		opts.GeolocationTimeout = geolocation.DefaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Zone == nil {
		opts.Zone = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "Search for a city (e.g. Lahore, London)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 48

	today := opts.Now().In(opts.Zone)
	start := newDateInput(today.AddDate(-1, 0, 0))
	end := newDateInput(today)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := Model{
		focus:           FocusSearch,
		searchInput:     ti,
		startInput:      start,
		endInput:        end,
		history:         viewport.New(historyWidth(0), historyHeight(0)),
		spinner:         s,
		spinning:        true,
		keys:            defaultKeyMap(),
		zones:           zone.New(),
		client:          opts.Client,
		locator:         opts.Locator,
		logger:          opts.Logger.With().Str("component", "ui").Logger(),
		defaultLocation: opts.DefaultLocation,
		pastDays:        opts.PastDays,
		errorTimeout:    opts.ErrorTimeout,
		geoTimeout:      opts.GeolocationTimeout,
		now:             opts.Now,
		loc:             opts.Zone,
	}
	m.state.View = ViewLoading
	m.state.debounce.delay = opts.Debounce
	return m
}

func newDateInput(value time.Time) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = models.DateLayout
	ti.CharLimit = 10
	ti.Width = 12
	ti.SetValue(value.Format(models.DateLayout))
	return ti
}

// State returns a copy of the dashboard state
func (m Model) State() AppState {
	return m.state
}

// Init starts the spinner and the startup geolocation lookup
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		locate(m.locator, m.geoTimeout, false),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Width = historyWidth(msg.Width)
		m.history.Height = historyHeight(msg.Height)
		m.refreshHistory()
		return m, nil

	case debounceFiredMsg:
		cmd := m.handleDebounceFired(msg)
		return m, cmd

	case suggestionsFetchedMsg:
		m.handleSuggestions(msg)
		return m, nil

	case weatherFetchedMsg:
		cmd := m.handleWeather(msg)
		return m, cmd

	case historicalFetchedMsg:
		cmd := m.handleHistorical(msg)
		return m, cmd

	case locatedMsg:
		cmd := m.handleLocated(msg)
		return m, cmd

	case bannerExpiredMsg:
		if msg.id == m.state.Banner.ID && m.state.Banner.Message != "" {
			m.state.Banner = banner{}
			if m.state.View == ViewError {
				m.state.View = ViewContent
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

// handleKey routes key presses: global bindings first, then the focused input
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.NextField):
		return m.setFocus(m.focus.next())

	case key.Matches(msg, m.keys.PrevField):
		return m.setFocus(m.focus.prev())

	case key.Matches(msg, m.keys.ToggleUnit):
		m.state.Unit = m.state.Unit.Toggle()
		m.refreshHistory()
		return nil

	case key.Matches(msg, m.keys.PastDays):
		m.state.PastDays = !m.state.PastDays
		return m.reload()

	case key.Matches(msg, m.keys.Locate):
		return m.locateManually()

	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	if m.focus == FocusHistory {
		return m.updateFocusedInput(msg)
	}
	if key.Matches(msg, m.keys.Submit) {
		return m.loadHistorical()
	}
	return m.updateFocusedInput(msg)
}

// setFocus moves key input to f. Leaving the search box hides suggestions
// and returning shows them again if there are any.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.searchInput.Blur()
	m.startInput.Blur()
	m.endInput.Blur()

	switch f {
	case FocusStartDate:
		m.state.DropdownVisible = false
		return m.startInput.Focus()
	case FocusEndDate:
		m.state.DropdownVisible = false
		return m.endInput.Focus()
	case FocusHistory:
		m.state.DropdownVisible = false
		return nil
	default:
		m.state.DropdownVisible = len(m.state.Results) > 0
		return m.searchInput.Focus()
	}
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FocusStartDate:
		m.startInput, cmd = m.startInput.Update(msg)
	case FocusEndDate:
		m.endInput, cmd = m.endInput.Update(msg)
	case FocusHistory:
		m.history, cmd = m.history.Update(msg)
	default:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return cmd
}

// busy reports whether anything the spinner stands for is in flight
func (m Model) busy() bool {
	return m.state.View == ViewLoading || m.state.HistoricalStatus == HistoricalLoading || m.state.Locating
}

// startSpinner restarts the spinner tick loop if it has stopped
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// showBanner displays message and schedules its dismissal
func (m *Model) showBanner(message string) tea.Cmd {
	m.bannerSeq++
	m.state.Banner = banner{ID: m.bannerSeq, Message: message}
	return expireBanner(m.bannerSeq, m.errorTimeout)
}

// clearBanner drops the banner; the error view goes with it
func (m *Model) clearBanner() {
	m.state.Banner = banner{}
	if m.state.View == ViewError {
		m.state.View = ViewContent
	}
}
