// Package series turns hourly parallel arrays into the day summaries and
// hourly windows the dashboard displays.
package series

import (
	"sort"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/timefmt"
	"github.com/ngmaloney/weather-terminal/internal/units"
)

type dayBucket struct {
	date     time.Time
	temps    []float64
	humidity float64
	wind     float64
}

// Aggregate groups the series by calendar date (in loc) and summarises each
// day. Days only appear if at least one time stamp falls on them; averages
// divide by that day's own sample count. The result is sorted by date.
// Time stamps that cannot be parsed are skipped.
func Aggregate(h *models.HourlySeries, loc *time.Location) []models.DayAggregate {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*dayBucket)
	for i := 0; i < h.Len(); i++ {
		ts, err := models.ParseTimestamp(h.Time[i], loc)
		if err != nil {
			continue
		}
		day := timefmt.StartOfDay(ts)
		key := day.Format(models.DateLayout)

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{date: day}
			buckets[key] = b
		}
		b.temps = append(b.temps, h.Temperature(i))
		b.humidity += h.Humidity(i)
		b.wind += h.WindSpeed(i)
	}

	days := make([]models.DayAggregate, 0, len(buckets))
	for _, b := range buckets {
		n := float64(len(b.temps))
		minT, maxT, sumT := b.temps[0], b.temps[0], 0.0
		for _, t := range b.temps {
			sumT += t
			if t < minT {
				minT = t
			}
			if t > maxT {
				maxT = t
			}
		}

		days = append(days, models.DayAggregate{
			Date:        b.date,
			AvgTemp:     units.Round(sumT / n),
			MinTemp:     units.Round(minT),
			MaxTemp:     units.Round(maxT),
			AvgHumidity: units.Round(b.humidity / n),
			AvgWind:     units.RoundTenth(b.wind / n),
			Samples:     len(b.temps),
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

// AggregateTemperatures is Aggregate for series that only carry temperatures,
// such as historical data. Humidity and wind come back as zero.
func AggregateTemperatures(h *models.HourlySeries, loc *time.Location) []models.DayAggregate {
	if h == nil {
		return nil
	}
	tempsOnly := &models.HourlySeries{Time: h.Time, Temperature2m: h.Temperature2m}
	return Aggregate(tempsOnly, loc)
}
