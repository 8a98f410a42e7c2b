package models

import (
	"strings"
	"time"
)

// CurrentConditions is the "current" block of the weather endpoint
type CurrentConditions struct {
	Temperature2m      float64 `json:"temperature_2m"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
}

// HourlySeries holds parallel per-hour arrays. Index i of every array
// describes the instant Time[i]. Arrays that are missing or shorter than Time
// read as zero through the accessor methods.
type HourlySeries struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
	WindSpeed10m       []float64 `json:"wind_speed_10m"`
}

// Len is the number of instants in the series (the length of Time)
func (h *HourlySeries) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Time)
}

// Temperature returns the temperature at index i, or 0 if absent
func (h *HourlySeries) Temperature(i int) float64 {
	return valueAt(h.Temperature2m, i)
}

// Humidity returns the relative humidity at index i, or 0 if absent
func (h *HourlySeries) Humidity(i int) float64 {
	return valueAt(h.RelativeHumidity2m, i)
}

// WindSpeed returns the wind speed at index i, or 0 if absent
func (h *HourlySeries) WindSpeed(i int) float64 {
	return valueAt(h.WindSpeed10m, i)
}

// HasTemperatures reports whether the series carries both time stamps and
// temperatures, the minimum needed for the historical list.
func (h *HourlySeries) HasTemperatures() bool {
	return h != nil && len(h.Time) > 0 && len(h.Temperature2m) > 0
}

func valueAt(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

// WeatherReport is the body of a successful /api/weather response
type WeatherReport struct {
	Location *EchoedLocation    `json:"location,omitempty"`
	Current  *CurrentConditions `json:"current,omitempty"`
	Hourly   *HourlySeries      `json:"hourly,omitempty"`
}

// HistoricalReport is the body of a successful /api/historical response
type HistoricalReport struct {
	Location *EchoedLocation `json:"location,omitempty"`
	Hourly   *HourlySeries   `json:"hourly,omitempty"`
}

// WeatherQuery selects what /api/weather is asked for. LocationName wins over
// Coordinates; when both are empty the caller's default location is used.
type WeatherQuery struct {
	Coordinates  *Coordinates
	LocationName string
	PastDays     int
}

// HistoricalQuery asks /api/historical for an inclusive date range
type HistoricalQuery struct {
	Coordinates Coordinates
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
}

// DateLayout is the wire format of historical range bounds
const DateLayout = "2006-01-02"

// localMinuteLayout is the format Open-Meteo uses for hourly time stamps
const localMinuteLayout = "2006-01-02T15:04"

// ParseTimestamp parses an hourly time stamp. Stamps without a zone are wall
// clock times and are read in loc; stamps with a zone keep it.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(localMinuteLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}
