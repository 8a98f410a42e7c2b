package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestView_BeforeWindowSize(t *testing.T) {
	m := NewModel(Options{Client: &mockClient{}})
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestView_Loading(t *testing.T) {
	m := newTestModel(&mockClient{})
	view := m.View()

	if !strings.Contains(view, "Loading weather data...") {
		t.Error("loading state should show the loading indicator")
	}
	if strings.Contains(view, emptyPlaceholder) {
		t.Error("loading state should hide content")
	}
}

func TestView_EmptyPlaceholder(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.View = ViewContent

	if !strings.Contains(m.View(), emptyPlaceholder) {
		t.Error("content state without data should show the placeholder")
	}
}

func TestView_Content(t *testing.T) {
	m := loaded(t, &mockClient{})
	view := m.View()

	for _, want := range []string{
		"Lahore, Pakistan",
		"updated now",
		"22°C",
		"Clear",
		"7.2 km/h",
		"44%",
		"Tuesday 10:30 AM",
		"Next 24 hours",
		"11:00 AM",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_ErrorShowsBannerOverContent(t *testing.T) {
	m := loaded(t, &mockClient{})
	m.state.View = ViewError
	m.showBanner("Location not found")

	view := m.View()
	if !strings.Contains(view, "Location not found") {
		t.Error("banner text missing")
	}
	if !strings.Contains(view, "22°C") {
		t.Error("prior content should remain beneath the banner")
	}
}

func TestView_Dropdown(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Results = lahoreResults
	m.state.DropdownVisible = true
	m, _ = press(m, tea.KeyDown)

	view := m.View()
	if !strings.Contains(view, "Pakistan") || !strings.Contains(view, "United States") {
		t.Error("dropdown should list name and country for each row")
	}

	m, _ = press(m, tea.KeyEsc)
	if strings.Contains(m.View(), "United States") {
		t.Error("hidden dropdown should not render")
	}
}

func TestView_LocatingIndicator(t *testing.T) {
	m := newTestModel(&mockClient{})
	m.state.Locating = true

	if !strings.Contains(m.View(), "locating...") {
		t.Error("my location control should show it is busy")
	}
}
