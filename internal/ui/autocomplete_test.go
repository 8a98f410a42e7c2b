package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestShortQueryHidesAndClears(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true

	m = typeText(m, "L")

	if m.state.DropdownVisible {
		t.Error("dropdown should be hidden for a one character query")
	}
	if m.state.Results != nil {
		t.Errorf("results = %v, want cleared", m.state.Results)
	}
}

func TestWhitespaceQueryNeverArms(t *testing.T) {
	m := newTestModel(&mockClient{})
	m = typeText(m, "  a  ")

	if m.state.debounce.pending {
		t.Error("a query that trims to one character must not arm a lookup")
	}
}

func TestDebounceIssuesOneLookupAfterLastKeystroke(t *testing.T) {
	client := &mockClient{suggestions: lahoreResults}
	m := newTestModel(client)

	m = typeText(m, "Lahore")
	latest := m.state.debounce.generation

	var lookups []tea.Cmd
	for gen := uint64(1); gen < latest; gen++ {
		var cmd tea.Cmd
		m, cmd = update(m, debounceFiredMsg{generation: gen, query: "stale"})
		if cmd != nil {
			lookups = append(lookups, cmd)
		}
	}
	if len(lookups) != 0 {
		t.Fatalf("superseded debounce ticks issued %d lookups", len(lookups))
	}

	if !m.state.debounce.pending {
		t.Fatal("typing Lahore should leave a lookup pending")
	}
	fired := debounceFiredMsg{generation: latest, query: "Lahore"}
	m, cmd := update(m, fired)
	if cmd == nil {
		t.Fatal("latest debounce tick should issue a lookup")
	}
	msg := findMsg[suggestionsFetchedMsg](t, cmd)

	if len(client.autocompleteCalls) != 1 || client.autocompleteCalls[0] != "Lahore" {
		t.Errorf("autocomplete calls = %v, want [Lahore]", client.autocompleteCalls)
	}

	m, _ = update(m, msg)
	if !m.state.DropdownVisible || len(m.state.Results) != 2 {
		t.Errorf("dropdown visible = %v with %d results, want 2 visible rows", m.state.DropdownVisible, len(m.state.Results))
	}
}

func TestStaleSuggestionsDropped(t *testing.T) {
	m := newTestModel(&mockClient{})

	first := m.state.autocompleteSeq.Next()
	second := m.state.autocompleteSeq.Next()

	m, _ = update(m, suggestionsFetchedMsg{seq: second, query: "Lah", results: lahoreResults[:1]})
	m, _ = update(m, suggestionsFetchedMsg{seq: first, query: "La", results: lahoreResults})

	if len(m.state.Results) != 1 {
		t.Errorf("results = %d rows, want the latest response's 1 row", len(m.state.Results))
	}
}

func TestShortQueryInvalidatesInFlightLookup(t *testing.T) {
	m := newTestModel(&mockClient{})
	m = typeText(m, "La")
	seq := m.state.autocompleteSeq.Next()

	m, _ = press(m, tea.KeyBackspace)
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "La", results: lahoreResults})

	if m.state.DropdownVisible || len(m.state.Results) != 0 {
		t.Error("a lookup that finished after the query got too short must be discarded")
	}
}

func TestEmptySuggestionsHideDropdown(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true

	seq := m.state.autocompleteSeq.Next()
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "Zz"})

	if m.state.DropdownVisible || m.state.Results != nil {
		t.Error("empty results should clear and hide the dropdown")
	}
}

func TestLookupFailureKeepsCachedResults(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true

	seq := m.state.autocompleteSeq.Next()
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "Lah", err: errors.New("boom")})

	if m.state.DropdownVisible {
		t.Error("dropdown should hide on lookup failure")
	}
	if len(m.state.Results) != 2 {
		t.Errorf("cached results = %d, want 2 kept", len(m.state.Results))
	}
	if m.state.Banner.Message != "" {
		t.Errorf("lookup failures should not show a banner, got %q", m.state.Banner.Message)
	}
}

func TestSelectSecondSuggestionLoadsWeather(t *testing.T) {
	client := &mockClient{weather: sampleReport()}
	m := newTestModel(client)
	m = typeText(m, "Lahore")

	seq := m.state.autocompleteSeq.Next()
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "Lahore", results: lahoreResults})
	if len(m.state.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(m.state.Results))
	}

	m, _ = press(m, tea.KeyDown)
	if m.state.Highlight != 1 {
		t.Fatalf("highlight = %d, want 1", m.state.Highlight)
	}

	m, cmd := press(m, tea.KeyEnter)

	want := lahoreResults[1]
	if got := m.searchInput.Value(); got != want.Display {
		t.Errorf("search text = %q, want %q", got, want.Display)
	}
	if m.state.Results != nil || m.state.DropdownVisible {
		t.Error("selection should clear and hide suggestions")
	}
	if m.state.Active == nil || *m.state.Active != want.Coordinates() {
		t.Errorf("active = %v, want %v", m.state.Active, want.Coordinates())
	}
	if m.state.View != ViewLoading {
		t.Errorf("view = %v, want loading", m.state.View)
	}

	m, _ = update(m, findMsg[weatherFetchedMsg](t, cmd))
	if m.state.View != ViewContent {
		t.Errorf("view = %v, want content", m.state.View)
	}
	q := client.weatherQueries[0]
	if q.Coordinates == nil || *q.Coordinates != want.Coordinates() {
		t.Errorf("weather query coordinates = %v, want %v", q.Coordinates, want.Coordinates())
	}
}

func TestEnterSelectsFirstRowByDefault(t *testing.T) {
	client := &mockClient{weather: sampleReport()}
	m := newTestModel(client)
	m = typeText(m, "Lahore")
	seq := m.state.autocompleteSeq.Next()
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "Lahore", results: lahoreResults})

	m, _ = press(m, tea.KeyEnter)

	if got := m.searchInput.Value(); got != lahoreResults[0].Display {
		t.Errorf("search text = %q, want %q", got, lahoreResults[0].Display)
	}
}

func TestEnterOnEmptyInputShowsValidation(t *testing.T) {
	client := &mockClient{}
	m := newTestModel(client)

	m, cmd := press(m, tea.KeyEnter)

	if m.state.Banner.Message != "Please enter a location" {
		t.Errorf("banner = %q", m.state.Banner.Message)
	}
	collect(cmd)
	if len(client.weatherQueries) != 0 {
		t.Error("validation failure must not call the backend")
	}
}

func TestEnterWithoutResultsLoadsByName(t *testing.T) {
	client := &mockClient{weather: sampleReport()}
	m := newTestModel(client)
	m = typeText(m, "Springfield")

	_, cmd := press(m, tea.KeyEnter)
	findMsg[weatherFetchedMsg](t, cmd)

	if len(client.weatherQueries) != 1 {
		t.Fatalf("weather calls = %d, want 1", len(client.weatherQueries))
	}
	q := client.weatherQueries[0]
	if q.LocationName != "Springfield" || q.Coordinates != nil {
		t.Errorf("query = %+v, want by name", q)
	}
}

func TestEnterOnPreviouslySelectedLabelReusesCoordinates(t *testing.T) {
	client := &mockClient{weather: sampleReport()}
	m := newTestModel(client)
	m = typeText(m, "Lahore")
	seq := m.state.autocompleteSeq.Next()
	m, _ = update(m, suggestionsFetchedMsg{seq: seq, query: "Lahore", results: lahoreResults})
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyEnter)

	_, cmd := press(m, tea.KeyEnter)
	findMsg[weatherFetchedMsg](t, cmd)

	last := client.weatherQueries[len(client.weatherQueries)-1]
	if last.LocationName != "" || last.Coordinates == nil || *last.Coordinates != lahoreResults[1].Coordinates() {
		t.Errorf("query = %+v, want coordinates of the selected label", last)
	}
}

func TestEscapeAndFocusHideDropdown(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true

	m, _ = press(m, tea.KeyEsc)
	if m.state.DropdownVisible {
		t.Error("escape should hide the dropdown")
	}
	if len(m.state.Results) != 2 {
		t.Error("escape should keep results")
	}

	m.state.DropdownVisible = true
	m, _ = press(m, tea.KeyTab)
	if m.focus != FocusStartDate || m.state.DropdownVisible {
		t.Errorf("tab: focus = %v visible = %v, want start date and hidden", m.focus, m.state.DropdownVisible)
	}

	m, _ = press(m, tea.KeyShiftTab)
	if m.focus != FocusSearch || !m.state.DropdownVisible {
		t.Errorf("shift+tab: focus = %v visible = %v, want search and shown", m.focus, m.state.DropdownVisible)
	}
}

func TestClickOutsideHidesDropdown(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true

	m, _ = update(m, tea.MouseMsg{X: 150, Y: 55, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if m.state.DropdownVisible {
		t.Error("click outside the search zone should hide the dropdown")
	}
	if len(m.state.Results) != 2 {
		t.Error("click outside should keep results")
	}
}

func TestSelectionIgnoresLateSuggestions(t *testing.T) {
	client := &mockClient{weather: sampleReport()}
	m := newTestModel(client)
	m = typeText(m, "Lahore")
	inFlight := m.state.autocompleteSeq.Next()

	m.state.Results = lahoreResults
	m, _ = press(m, tea.KeyEnter)
	m, _ = update(m, suggestionsFetchedMsg{seq: inFlight, query: "Lahore", results: lahoreResults})

	if m.state.DropdownVisible {
		t.Error("a lookup finishing after selection must not reopen the dropdown")
	}
}
