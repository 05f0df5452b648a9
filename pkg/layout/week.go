package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
)

const DaysInWeek = 7

type WeekDay struct {
	Date      time.Time
	DayName   string
	DayNumber int
	IsToday   bool
}

// Week is always seven contiguous days; index 0 is the first day of the week.
type Week [DaysInWeek]WeekDay

// WeekOf returns the week containing date, starting on firstDay.
func WeekOf(date time.Time, firstDay time.Weekday, now time.Time, loc *time.Location) Week {
	day := StartOfDay(date, loc)
	delta := (int(day.Weekday()) - int(firstDay) + DaysInWeek) % DaysInWeek
	start := day.AddDate(0, 0, -delta)
	today := StartOfDay(now, loc)

	var week Week
	for i := range week {
		d := start.AddDate(0, 0, i)
		week[i] = WeekDay{
			Date:      d,
			DayName:   d.Format("Mon"),
			DayNumber: d.Day(),
			IsToday:   d.Equal(today),
		}
	}
	return week
}

// Start is midnight of the first day.
func (w Week) Start() time.Time {
	return w[0].Date
}

// End is midnight after the last day (exclusive).
func (w Week) End() time.Time {
	return w[DaysInWeek-1].Date.AddDate(0, 0, 1)
}

// IndexOf returns the column of the day equal to day, or -1.
func (w Week) IndexOf(day time.Time) int {
	for i, d := range w {
		if d.Date.Equal(day) {
			return i
		}
	}
	return -1
}

// Contains reports whether the event occurs on any day of the week.
func (w Week) Contains(event calendar.Event, loc *time.Location) bool {
	for _, d := range w {
		if IsEventOnDate(event, d.Date, loc) {
			return true
		}
	}
	return false
}

func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
