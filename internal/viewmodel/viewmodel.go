// Package viewmodel turns fetched weather data plus the current display
// settings into the rows each dashboard zone prints. Everything here is a pure
// function of its inputs; styling happens in the ui package.
package viewmodel

import (
	"fmt"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/series"
	"github.com/ngmaloney/weather-terminal/internal/timefmt"
	"github.com/ngmaloney/weather-terminal/internal/units"
)

// Settings is the display state the renderer depends on besides the data
type Settings struct {
	Unit     units.Unit
	PastDays bool
	Now      time.Time
	Location *time.Location // zone hourly stamps are read in; nil means time.Local
}

func (s Settings) loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Current is the current-conditions summary
type Current struct {
	Temperature   string // number only, e.g. "22"
	Unit          string // "°C" or "°F"
	Wind          string // "3.4 km/h"
	Humidity      string // "45%"
	Precipitation string // always "0%", the backend sends none
	Clock         string // "Monday 3:04 PM"
	Condition     string
	Icon          string
}

// HourlyRow is one entry of the hourly strip
type HourlyRow struct {
	Time        string
	Temperature string
	Humidity    string
	Wind        string
	Celsius     float64 // raw value, used for the sparkline
}

// DayRow is one entry of the past-days list
type DayRow struct {
	Label     string
	Humidity  string
	Average   string
	Details   string
	Aggregate models.DayAggregate
}

// HistoricalRow is one entry of the historical list
type HistoricalRow struct {
	Label   string
	Average string
	Range   string
}

// Dashboard is the content of every zone fed by /api/weather
type Dashboard struct {
	Current  *Current
	Hourly   []HourlyRow
	PastDays []DayRow
}

// Build renders a weather report. baseline is the Celsius temperature stored
// when the report was loaded; the current zone is derived from it so that a
// unit switch never needs the report again.
func Build(r *models.WeatherReport, baseline units.Baseline, s Settings) Dashboard {
	var d Dashboard
	if r == nil {
		return d
	}
	if r.Current != nil && baseline.Valid() {
		c := BuildCurrent(r.Current, baseline, s)
		d.Current = &c
	}
	if r.Hourly != nil {
		d.Hourly = BuildHourly(r.Hourly, s)
		if s.PastDays {
			d.PastDays = BuildPastDays(r.Hourly, s)
		}
	}
	return d
}

// BuildCurrent renders the current-conditions zone
func BuildCurrent(c *models.CurrentConditions, baseline units.Baseline, s Settings) Current {
	celsius := baseline.Celsius()
	return Current{
		Temperature:   fmt.Sprintf("%d", baseline.Display(s.Unit)),
		Unit:          s.Unit.Symbol(),
		Wind:          fmt.Sprintf("%.1f km/h", c.WindSpeed10m),
		Humidity:      fmt.Sprintf("%d%%", units.Round(c.RelativeHumidity2m)),
		Precipitation: "0%",
		Clock:         timefmt.Clock(s.Now),
		Condition:     Condition(celsius),
		Icon:          Icon(celsius, timefmt.IsNight(s.Now)),
	}
}

// BuildHourly renders the next 24 hours starting at the first stamp not
// before s.Now
func BuildHourly(h *models.HourlySeries, s Settings) []HourlyRow {
	start, end := series.Window(h, s.Now, s.loc())

	rows := make([]HourlyRow, 0, end-start)
	for i := start; i < end; i++ {
		label := h.Time[i]
		if ts, err := models.ParseTimestamp(h.Time[i], s.loc()); err == nil {
			label = timefmt.Hour(ts)
		}
		temp := h.Temperature(i)
		rows = append(rows, HourlyRow{
			Time:        label,
			Temperature: fmt.Sprintf("%d°", units.Convert(temp, s.Unit)),
			Humidity:    fmt.Sprintf("%d%%", units.Round(h.Humidity(i))),
			Wind:        fmt.Sprintf("%.1f", h.WindSpeed(i)),
			Celsius:     temp,
		})
	}
	return rows
}

// BuildPastDays renders one row per calendar day in the series
func BuildPastDays(h *models.HourlySeries, s Settings) []DayRow {
	days := series.Aggregate(h, s.loc())

	rows := make([]DayRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, DayRow{
			Label:    timefmt.Day(d.Date, s.Now),
			Humidity: fmt.Sprintf("%d%% humidity", d.AvgHumidity),
			Average:  fmt.Sprintf("%d%s", convertWhole(d.AvgTemp, s.Unit), s.Unit.Symbol()),
			Details: fmt.Sprintf("%d° / %d° • %.1f km/h",
				convertWhole(d.MinTemp, s.Unit), convertWhole(d.MaxTemp, s.Unit), d.AvgWind),
			Aggregate: d,
		})
	}
	return rows
}

// BuildHistorical renders the historical list. It returns no rows when the
// report carries no usable data.
func BuildHistorical(r *models.HistoricalReport, s Settings) []HistoricalRow {
	if r == nil || !r.Hourly.HasTemperatures() {
		return nil
	}

	days := series.AggregateTemperatures(r.Hourly, s.loc())
	rows := make([]HistoricalRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, HistoricalRow{
			Label:   timefmt.LongDate(d.Date),
			Average: fmt.Sprintf("%d%s", convertWhole(d.AvgTemp, s.Unit), s.Unit.Symbol()),
			Range:   fmt.Sprintf("%d° / %d°", convertWhole(d.MinTemp, s.Unit), convertWhole(d.MaxTemp, s.Unit)),
		})
	}
	return rows
}

// convertWhole converts an already rounded Celsius figure
func convertWhole(celsius int, u units.Unit) int {
	return units.Convert(float64(celsius), u)
}
