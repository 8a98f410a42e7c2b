package series

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// WindowSize is how many hourly entries the forecast strip shows
const WindowSize = 24

// WindowStart returns the first index whose time stamp is at or after now.
// When no such index exists (every stamp is in the past) it returns 0, so the
// strip then starts at the beginning of the series.
func WindowStart(h *models.HourlySeries, now time.Time, loc *time.Location) int {
	for i := 0; i < h.Len(); i++ {
		ts, err := models.ParseTimestamp(h.Time[i], loc)
		if err != nil {
			continue
		}
		if !ts.Before(now) {
			return i
		}
	}
	return 0
}

// Window returns the [start, end) index range of the next WindowSize entries
// from WindowStart, clamped to the series length.
func Window(h *models.HourlySeries, now time.Time, loc *time.Location) (start, end int) {
	start = WindowStart(h, now, loc)
	end = start + WindowSize
	if end > h.Len() {
		end = h.Len()
	}
	return start, end
}
