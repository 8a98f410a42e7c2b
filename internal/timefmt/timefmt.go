// Package timefmt formats time stamps into the labels shown on the dashboard.
package timefmt

import "time"

// Hour formats a time as "3:04 PM"
func Hour(t time.Time) string {
	return t.Format("3:04 PM")
}

// Clock formats the "current time" line, e.g. "Monday 3:04 PM"
func Clock(t time.Time) string {
	return t.Format("Monday 3:04 PM")
}

// Day labels a calendar day relative to now: "Today", "Yesterday", otherwise
// "Mon, Jan 2". Both times are compared in now's location.
func Day(date, now time.Time) string {
	date = date.In(now.Location())
	switch {
	case SameDay(date, now):
		return "Today"
	case SameDay(date, now.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return date.Format("Mon, Jan 2")
	}
}

// LongDate formats a day of the historical list: "Monday, January 2, 2006"
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// SameDay reports whether a and b fall on the same calendar date in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsNight reports whether t is between 18:00 and 06:00
func IsNight(t time.Time) bool {
	h := t.Hour()
	return h >= 18 || h < 6
}
