package layout

import (
	"math"
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
)

const HoursInDay = 24

// HourGrid is the non-uniform time axis shared by every day of a week.
// Offsets[h] is where hour h starts; Total is the height of the whole day.
type HourGrid struct {
	Heights [HoursInDay]float64
	Offsets [HoursInDay]float64
	Total   float64
}

// DenseHours marks the hours covered by a visible timed event plus one hour of
// margin on each side.
func DenseHours(events []calendar.Event, week Week, loc *time.Location) [HoursInDay]bool {
	var dense [HoursInDay]bool
	mark := func(h int) {
		if h >= 0 && h < HoursInDay {
			dense[h] = true
		}
	}

	for _, event := range events {
		if event.IsMultiDay || !week.Contains(event, loc) {
			continue
		}
		first := int(math.Floor(HourFraction(event.StartTime, loc)))
		last := int(math.Ceil(HourFraction(event.EndTime, loc))) - 1
		for h := max(first, 0); h <= min(last, HoursInDay-1); h++ {
			dense[h] = true
		}
		mark(first - 1)
		mark(last + 1)
	}
	return dense
}

func NewHourGrid(events []calendar.Event, week Week, opts Options) HourGrid {
	dense := DenseHours(events, week, opts.location())

	var grid HourGrid
	for h := range grid.Heights {
		if dense[h] {
			grid.Heights[h] = opts.StandardHourHeight
		} else {
			grid.Heights[h] = opts.CompactHourHeight
		}
		if h > 0 {
			grid.Offsets[h] = grid.Offsets[h-1] + grid.Heights[h-1]
		}
		grid.Total += grid.Heights[h]
	}
	return grid
}

// Position maps a fractional hour to its offset on the axis, linear within each hour.
func (g HourGrid) Position(hour float64) float64 {
	if hour <= 0 {
		return 0
	}
	h := int(math.Floor(hour))
	if h >= HoursInDay {
		return g.Total
	}
	return g.Offsets[h] + (hour-float64(h))*g.Heights[h]
}
