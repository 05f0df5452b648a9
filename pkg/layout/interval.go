package layout

import (
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateKey formats a day as its ISO date, e.g. "2025-03-10".
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// IsEventOnDate reports whether the event occurs on date's calendar day:
// the day is its start day, its end day, or lies strictly between them.
// Comparison is by calendar day in loc, not by instant.
func IsEventOnDate(event calendar.Event, date time.Time, loc *time.Location) bool {
	day := StartOfDay(date, loc)
	startDay := StartOfDay(event.StartTime, loc)
	endDay := StartOfDay(event.EndTime, loc)

	return day.Equal(startDay) ||
		day.Equal(endDay) ||
		(day.After(startDay) && day.Before(endDay))
}

// HourFraction maps a wall-clock time to a continuous hour axis, 14:30 -> 14.5.
// Seconds are ignored.
func HourFraction(t time.Time, loc *time.Location) float64 {
	local := t.In(loc)
	return float64(local.Hour()) + float64(local.Minute())/60
}

// overlaps is a strict half-open test: touching intervals do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && aEnd > bStart
}
