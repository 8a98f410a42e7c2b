package backend

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/timefmt"
)

// StaticClient serves generated weather for a fixed catalog of places. It
// never touches the network and backs the demo binary and UI tests.
type StaticClient struct {
	Places []StaticPlace

	// Now and Zone pin the generated series; defaults are time.Now and
	// time.Local.
	Now  func() time.Time
	Zone *time.Location
}

// StaticPlace is one catalog entry and the climate it reports
type StaticPlace struct {
	models.Location
	BaseTemp     float64
	BaseHumidity float64
	BaseWind     float64
}

// NewStaticClient returns a StaticClient with a small built-in catalog
func NewStaticClient() *StaticClient {
	return &StaticClient{Places: []StaticPlace{
		{Location: models.Location{Name: "Lahore", Country: "Pakistan", Display: "Lahore, Punjab, Pakistan", Latitude: 31.525309, Longitude: 74.299928}, BaseTemp: 27, BaseHumidity: 55, BaseWind: 8},
		{Location: models.Location{Name: "Lahore", Country: "United States", Display: "Lahore, Virginia, United States", Latitude: 38.1985, Longitude: -77.9697}, BaseTemp: 14, BaseHumidity: 68, BaseWind: 11},
		{Location: models.Location{Name: "London", Country: "United Kingdom", Display: "London, England, United Kingdom", Latitude: 51.5085, Longitude: -0.1257}, BaseTemp: 11, BaseHumidity: 78, BaseWind: 15},
		{Location: models.Location{Name: "Oslo", Country: "Norway", Display: "Oslo, Norway", Latitude: 59.9127, Longitude: 10.7461}, BaseTemp: -2, BaseHumidity: 82, BaseWind: 9},
		{Location: models.Location{Name: "Seattle", Country: "United States", Display: "Seattle, Washington, United States", Latitude: 47.6062, Longitude: -122.3321}, BaseTemp: 12, BaseHumidity: 80, BaseWind: 12},
		{Location: models.Location{Name: "Singapore", Country: "Singapore", Display: "Singapore", Latitude: 1.2897, Longitude: 103.8501}, BaseTemp: 30, BaseHumidity: 84, BaseWind: 7},
	}}
}

// Autocomplete returns catalog entries whose name starts with query
func (s *StaticClient) Autocomplete(ctx context.Context, query string) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return nil, nil
	}

	var results []models.Location
	for _, p := range s.Places {
		if strings.HasPrefix(strings.ToLower(p.Name), query) {
			results = append(results, p.Location)
		}
	}
	return results, nil
}

// Weather generates a report for the named place or the nearest catalog entry
func (s *StaticClient) Weather(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}

	place, ok := s.resolve(query)
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Location not found"}
	}

	now := s.now()
	first := timefmt.StartOfDay(now).AddDate(0, 0, -query.PastDays)
	last := timefmt.StartOfDay(now).AddDate(0, 0, 7)
	hourly := place.series(first, last, true)

	current := place.sample(now)
	return &models.WeatherReport{
		Location: &models.EchoedLocation{
			Name:      place.Name,
			Country:   place.Country,
			Latitude:  place.Latitude,
			Longitude: place.Longitude,
		},
		Current: &models.CurrentConditions{
			Temperature2m:      current.temp,
			WindSpeed10m:       current.wind,
			RelativeHumidity2m: current.humidity,
		},
		Hourly: hourly,
	}, nil
}

// Historical generates an hourly temperature series for the date range
func (s *StaticClient) Historical(ctx context.Context, query models.HistoricalQuery) (*models.HistoricalReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}

	zone := s.zone()
	start, err := time.ParseInLocation(models.DateLayout, query.StartDate, zone)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "start_date and end_date required (format: YYYY-MM-DD)"}
	}
	end, err := time.ParseInLocation(models.DateLayout, query.EndDate, zone)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "start_date and end_date required (format: YYYY-MM-DD)"}
	}

	c := query.Coordinates
	place := s.nearest(c)
	return &models.HistoricalReport{
		Location: &models.EchoedLocation{Name: place.Name, Country: place.Country, Latitude: place.Latitude, Longitude: place.Longitude},
		Hourly:   place.series(start, end.AddDate(0, 0, 1), false),
	}, nil
}

func (s *StaticClient) resolve(query models.WeatherQuery) (StaticPlace, bool) {
	if name := strings.TrimSpace(query.LocationName); name != "" {
		for _, p := range s.Places {
			if strings.EqualFold(p.Name, name) || strings.EqualFold(p.Display, name) {
				return p, true
			}
		}
		return StaticPlace{}, false
	}
	if len(s.Places) == 0 {
		return StaticPlace{}, false
	}
	c := DefaultLocation
	if query.Coordinates != nil {
		c = *query.Coordinates
	}
	return s.nearest(c), true
}

func (s *StaticClient) nearest(c models.Coordinates) StaticPlace {
	var best StaticPlace
	bestDist := math.Inf(1)
	for _, p := range s.Places {
		d := math.Hypot(p.Latitude-c.Latitude, p.Longitude-c.Longitude)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func (s *StaticClient) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.zone())
	}
	return time.Now().In(s.zone())
}

func (s *StaticClient) zone() *time.Location {
	if s.Zone != nil {
		return s.Zone
	}
	return time.Local
}

type sample struct {
	temp, humidity, wind float64
}

// sample follows a daily cycle peaking mid afternoon
func (p StaticPlace) sample(t time.Time) sample {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	phase := math.Sin((hour - 9) / 24 * 2 * math.Pi)
	drift := math.Sin(float64(t.YearDay()) / 3)
	return sample{
		temp:     math.Round((p.BaseTemp+6*phase+2*drift)*10) / 10,
		humidity: math.Round(p.BaseHumidity - 12*phase),
		wind:     math.Round((p.BaseWind+3*drift+2*phase)*10) / 10,
	}
}

func (p StaticPlace) series(from, to time.Time, full bool) *models.HourlySeries {
	h := &models.HourlySeries{}
	for t := from; t.Before(to); t = t.Add(time.Hour) {
		v := p.sample(t)
		h.Time = append(h.Time, t.Format("2006-01-02T15:04"))
		h.Temperature2m = append(h.Temperature2m, v.temp)
		if full {
			h.RelativeHumidity2m = append(h.RelativeHumidity2m, v.humidity)
			h.WindSpeed10m = append(h.WindSpeed10m, v.wind)
		}
	}
	return h
}
