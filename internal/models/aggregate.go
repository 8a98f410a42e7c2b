package models

import "time"

// DayAggregate summarises every hourly sample that falls on one calendar day.
// It is computed on demand and never stored.
type DayAggregate struct {
	Date        time.Time // midnight of the day, local time
	AvgTemp     int
	MinTemp     int
	MaxTemp     int
	AvgHumidity int
	AvgWind     float64 // one decimal
	Samples     int
}

// Key is the calendar date string the aggregate is grouped by
func (d DayAggregate) Key() string {
	return d.Date.Format(DateLayout)
}
