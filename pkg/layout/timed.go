package layout

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/klokku/weekgrid/pkg/calendar"
)

const (
	// width of an event that collides with nothing, leaving room to click the empty slot
	defaultWidth  = 95.0
	defaultZIndex = 1
	// width shared by the columns of a collision group
	groupWidth = 98.0
)

// PositionedEvent is a timed event with its on-screen geometry. Top and Height
// are in the grid unit; Left and Width are percentages of the day column.
type PositionedEvent struct {
	calendar.Event
	Top    float64
	Height float64
	Left   float64
	Width  float64
	ZIndex int
	Column int
	Unit   string
}

func (p PositionedEvent) TopCSS() string    { return formatLength(p.Top, p.Unit) }
func (p PositionedEvent) HeightCSS() string { return formatLength(p.Height, p.Unit) }
func (p PositionedEvent) LeftCSS() string   { return formatPercent(p.Left) }
func (p PositionedEvent) WidthCSS() string  { return formatPercent(p.Width) }

type timedItem struct {
	positioned PositionedEvent
	start      float64
	end        float64
}

func (i *timedItem) overlaps(other *timedItem) bool {
	return overlaps(i.start, i.end, other.start, other.end)
}

// PositionTimedEvents lays out the timed events of a single day. Events that
// overlap in time are split into side-by-side columns; the rest keep the default
// width. The result is ordered by start ascending, longer events first on ties.
func PositionTimedEvents(events []calendar.Event, grid HourGrid, opts Options) []PositionedEvent {
	loc := opts.location()

	items := make([]*timedItem, 0, len(events))
	for _, event := range events {
		start := HourFraction(event.StartTime, loc)
		end := HourFraction(event.EndTime, loc)
		top := grid.Position(start)
		items = append(items, &timedItem{
			start: start,
			end:   end,
			positioned: PositionedEvent{
				Event:  event,
				Top:    top,
				Height: grid.Position(end) - top,
				Left:   0,
				Width:  defaultWidth,
				ZIndex: defaultZIndex,
				Unit:   opts.Unit,
			},
		})
	}

	slices.SortStableFunc(items, func(a, b *timedItem) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end, a.end)
	})

	for _, group := range collisionGroups(items) {
		if len(group) > 1 {
			assignColumns(group)
		}
	}

	positioned := make([]PositionedEvent, 0, len(items))
	for _, item := range items {
		positioned = append(positioned, item.positioned)
	}
	return positioned
}

// collisionGroups puts each item into the first group holding a member it
// overlaps, or into a new group. Items must be sorted by start.
func collisionGroups(items []*timedItem) [][]*timedItem {
	var groups [][]*timedItem
	for _, item := range items {
		placed := false
		for g, group := range groups {
			if slices.ContainsFunc(group, item.overlaps) {
				groups[g] = append(group, item)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*timedItem{item})
		}
	}
	return groups
}

// assignColumns packs a collision group greedily into the fewest columns it
// finds, earliest and longest first, and splits the group width between them.
func assignColumns(group []*timedItem) {
	ordered := slices.Clone(group)
	slices.SortStableFunc(ordered, func(a, b *timedItem) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end-b.start, a.end-a.start)
	})

	var columns [][]*timedItem
	for _, item := range ordered {
		col := 0
		for col < len(columns) && slices.ContainsFunc(columns[col], item.overlaps) {
			col++
		}
		if col == len(columns) {
			columns = append(columns, nil)
		}
		columns[col] = append(columns[col], item)
		item.positioned.Column = col
	}

	width := groupWidth / float64(len(columns))
	for _, item := range group {
		item.positioned.Width = width
		item.positioned.Left = float64(item.positioned.Column) * width
		item.positioned.ZIndex = 2 + item.positioned.Column
	}
}

func formatLength(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
