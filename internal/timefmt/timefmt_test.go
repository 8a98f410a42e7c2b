package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHour(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "12:00 AM"},
		{time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC), "9:05 AM"},
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "12:00 PM"},
		{time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), "11:30 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Hour(tt.in))
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "Wednesday 3:04 PM", Clock(time.Date(2024, 1, 3, 15, 4, 0, 0, time.UTC)))
}

func TestDay_Relative(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", Day(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Yesterday", Day(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Fri, Mar 8", Day(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Mon, Mar 11", Day(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC), now))
}

func TestDay_YesterdayAcrossMonth(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", Day(time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), now))
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "Monday, January 1, 2024", LongDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsNight(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC) }

	assert.True(t, IsNight(at(18)))
	assert.True(t, IsNight(at(23)))
	assert.True(t, IsNight(at(5)))
	assert.False(t, IsNight(at(6)))
	assert.False(t, IsNight(at(17)))
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 5, 6, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}
