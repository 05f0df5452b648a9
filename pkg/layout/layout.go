// Package layout computes the geometry of a weekly calendar view: a
// density-adaptive hour axis, side-by-side columns for colliding timed events,
// and row packing for multi-day events. Everything here is a pure function of
// the events, the week and the options.
package layout

import (
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
)

const (
	DefaultStandardHourHeight = 4.0
	DefaultCompactHourHeight  = 2.0
	DefaultUnit               = "rem"
)

type Options struct {
	StandardHourHeight float64
	CompactHourHeight  float64
	Unit               string
	// Location defines calendar days and wall-clock hours. Nil means time.Local.
	Location *time.Location
}

func DefaultOptions() Options {
	return Options{
		StandardHourHeight: DefaultStandardHourHeight,
		CompactHourHeight:  DefaultCompactHourHeight,
		Unit:               DefaultUnit,
		Location:           time.Local,
	}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

type WeekLayout struct {
	Week  Week
	Hours HourGrid
	Unit  string
	// TimedByDay holds an entry, possibly empty, for every day of the week keyed by DateKey.
	TimedByDay map[string][]PositionedEvent
	MultiDay   MultiDayLayout
}

// VisibleEvents keeps the events occurring on at least one day of the week.
func VisibleEvents(events []calendar.Event, week Week, loc *time.Location) []calendar.Event {
	visible := make([]calendar.Event, 0, len(events))
	for _, event := range events {
		if week.Contains(event, loc) {
			visible = append(visible, event)
		}
	}
	return visible
}

// Compute runs the whole layout for one week.
func Compute(events []calendar.Event, week Week, opts Options) WeekLayout {
	loc := opts.location()
	visible := VisibleEvents(events, week, loc)
	grid := NewHourGrid(visible, week, opts)

	byDay := make(map[string][]PositionedEvent, DaysInWeek)
	for _, day := range week {
		var dayEvents []calendar.Event
		for _, event := range visible {
			if !event.IsMultiDay && IsEventOnDate(event, day.Date, loc) {
				dayEvents = append(dayEvents, event)
			}
		}
		byDay[DateKey(day.Date)] = PositionTimedEvents(dayEvents, grid, opts)
	}

	return WeekLayout{
		Week:       week,
		Hours:      grid,
		Unit:       opts.Unit,
		TimedByDay: byDay,
		MultiDay:   PlaceMultiDayEvents(visible, week, loc),
	}
}
