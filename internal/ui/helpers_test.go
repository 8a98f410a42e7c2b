package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Mock clients for testing

type mockClient struct {
	mu sync.Mutex

	suggestions   []models.Location
	suggestErr    error
	weather       *models.WeatherReport
	weatherErr    error
	historical    *models.HistoricalReport
	historicalErr error

	autocompleteCalls []string
	weatherQueries    []models.WeatherQuery
	historicalQueries []models.HistoricalQuery
}

func (c *mockClient) Autocomplete(_ context.Context, query string) ([]models.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autocompleteCalls = append(c.autocompleteCalls, query)
	return c.suggestions, c.suggestErr
}

func (c *mockClient) Weather(_ context.Context, query models.WeatherQuery) (*models.WeatherReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weatherQueries = append(c.weatherQueries, query)
	if c.weatherErr != nil {
		return nil, c.weatherErr
	}
	return c.weather, nil
}

func (c *mockClient) Historical(_ context.Context, query models.HistoricalQuery) (*models.HistoricalReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.historicalQueries = append(c.historicalQueries, query)
	if c.historicalErr != nil {
		return nil, c.historicalErr
	}
	return c.historical, nil
}

type mockLocator struct {
	coords models.Coordinates
	err    error
}

func (l mockLocator) Locate(context.Context) (models.Coordinates, error) {
	return l.coords, l.err
}

var testNow = time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)

var lahoreResults = []models.Location{
	{Name: "Lahore", Country: "Pakistan", Display: "Lahore, Punjab, Pakistan", Latitude: 31.5497, Longitude: 74.3436},
	{Name: "Lahore", Country: "United States", Display: "Lahore, Virginia, United States", Latitude: 38.1985, Longitude: -77.9697},
}

func sampleReport() *models.WeatherReport {
	hourly := &models.HourlySeries{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 72; i++ {
		hourly.Time = append(hourly.Time, start.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		hourly.Temperature2m = append(hourly.Temperature2m, 10+float64(i%24)/2)
		hourly.RelativeHumidity2m = append(hourly.RelativeHumidity2m, 50)
		hourly.WindSpeed10m = append(hourly.WindSpeed10m, 3.5)
	}
	return &models.WeatherReport{
		Location: &models.EchoedLocation{Name: "Lahore", Country: "Pakistan", Latitude: 31.5497, Longitude: 74.3436},
		Current:  &models.CurrentConditions{Temperature2m: 21.6, WindSpeed10m: 7.2, RelativeHumidity2m: 44},
		Hourly:   hourly,
	}
}

func newTestModel(client *mockClient) Model {
	m := NewModel(Options{
		Client:       client,
		Locator:      mockLocator{},
		Debounce:     time.Millisecond,
		ErrorTimeout: time.Millisecond,
		Now:          func() time.Time { return testNow },
		Zone:         time.UTC,
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 160, Height: 60})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: k})
}

// collect runs cmd and every command batched inside it
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T produced by command", zero)
	return zero
}

// loaded returns a model showing sampleReport
func loaded(t *testing.T, client *mockClient) Model {
	t.Helper()
	client.weather = sampleReport()
	m := newTestModel(client)
	c := models.Coordinates{Latitude: 31.5497, Longitude: 74.3436}
	cmd := m.loadWeather(models.WeatherQuery{Coordinates: &c})
	m, _ = update(m, findMsg[weatherFetchedMsg](t, cmd))
	if m.state.View != ViewContent {
		t.Fatalf("setup: view = %v, want content", m.state.View)
	}
	return m
}
