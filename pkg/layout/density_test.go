package layout

import (
	"testing"
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return opts
}

func testWeek() Week {
	return WeekOf(weekStart, time.Sunday, at(3, 8, 0), time.UTC)
}

func denseSet(dense [HoursInDay]bool) []int {
	var hours []int
	for h, d := range dense {
		if d {
			hours = append(hours, h)
		}
	}
	return hours
}

func TestDenseHours(t *testing.T) {
	tests := []struct {
		name   string
		events []calendar.Event
		want   []int
	}{
		{"no events", nil, nil},
		{"one hour", []calendar.Event{timed("a", at(1, 9, 0), at(1, 10, 0))}, []int{8, 9, 10}},
		{"half hour", []calendar.Event{timed("a", at(1, 9, 0), at(1, 9, 30))}, []int{8, 9, 10}},
		{"partial hours", []calendar.Event{timed("a", at(1, 9, 15), at(1, 11, 45))}, []int{8, 9, 10, 11, 12}},
		{"start of day", []calendar.Event{timed("a", at(1, 0, 0), at(1, 0, 30))}, []int{0, 1}},
		{"end of day", []calendar.Event{timed("a", at(1, 23, 0), at(1, 23, 59))}, []int{22, 23}},
		{
			"union across days",
			[]calendar.Event{timed("a", at(1, 9, 0), at(1, 10, 0)), timed("b", at(5, 14, 0), at(5, 15, 0))},
			[]int{8, 9, 10, 13, 14, 15},
		},
		{"multi-day ignored", []calendar.Event{multiDay("trip", at(1, 9, 0), at(3, 10, 0))}, nil},
		{"outside week ignored", []calendar.Event{timed("a", at(8, 9, 0), at(8, 10, 0))}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, denseSet(DenseHours(tt.events, testWeek(), time.UTC)))
		})
	}
}

func TestNewHourGrid_NoEventsIsCompact(t *testing.T) {
	grid := NewHourGrid(nil, testWeek(), testOptions())

	for h := 0; h < HoursInDay; h++ {
		assert.Equal(t, DefaultCompactHourHeight, grid.Heights[h])
		assert.Equal(t, float64(h)*DefaultCompactHourHeight, grid.Offsets[h])
	}
	assert.Equal(t, 48.0, grid.Total)
}

func TestNewHourGrid_OffsetsArePrefixSums(t *testing.T) {
	events := []calendar.Event{timed("a", at(1, 9, 0), at(1, 10, 0))}

	grid := NewHourGrid(events, testWeek(), testOptions())

	assert.Equal(t, 0.0, grid.Offsets[0])
	sum := 0.0
	for h := 0; h < HoursInDay; h++ {
		assert.Equal(t, sum, grid.Offsets[h])
		sum += grid.Heights[h]
	}
	assert.Equal(t, sum, grid.Total)
	assert.Equal(t, 16.0, grid.Offsets[8])
	assert.Equal(t, 20.0, grid.Offsets[9])
	assert.Equal(t, 4.0, grid.Heights[9])
	// 21 compact hours and 3 standard hours
	assert.Equal(t, 54.0, grid.Total)
}

func TestHourGrid_Position(t *testing.T) {
	events := []calendar.Event{timed("a", at(1, 9, 0), at(1, 10, 0))}
	grid := NewHourGrid(events, testWeek(), testOptions())

	assert.Equal(t, grid.Offsets[9], grid.Position(9))
	assert.Equal(t, grid.Offsets[9]+0.5*grid.Heights[9], grid.Position(9.5))
	assert.Equal(t, grid.Offsets[10], grid.Position(10))
	assert.Equal(t, 0.0, grid.Position(-1))
	assert.Equal(t, grid.Total, grid.Position(24))
	assert.Equal(t, grid.Total, grid.Position(26))
}

func TestHourGrid_CustomHeights(t *testing.T) {
	opts := testOptions()
	opts.StandardHourHeight = 60
	opts.CompactHourHeight = 20

	grid := NewHourGrid([]calendar.Event{timed("a", at(1, 12, 0), at(1, 13, 0))}, testWeek(), opts)

	assert.Equal(t, 60.0, grid.Heights[12])
	assert.Equal(t, 20.0, grid.Heights[0])
	assert.Equal(t, 21*20.0+3*60.0, grid.Total)
}

// An event ending exactly at the next midnight has an end fraction of 0 on the
// wall clock, so only the margin hours are marked and its height on the start
// day is negative. Such events should be stored with IsMultiDay or end at 23:59.
func TestDenseHours_EndingAtMidnight(t *testing.T) {
	late := timed("late", at(1, 23, 0), at(2, 0, 0))
	opts := testOptions()

	assert.Equal(t, []int{0, 22}, denseSet(DenseHours([]calendar.Event{late}, testWeek(), time.UTC)))

	grid := NewHourGrid([]calendar.Event{late}, testWeek(), opts)
	positioned := PositionTimedEvents([]calendar.Event{late}, grid, opts)
	if assert.Len(t, positioned, 1) {
		assert.Equal(t, grid.Offsets[23], positioned[0].Top)
		assert.Equal(t, -grid.Offsets[23], positioned[0].Height)
	}

	l := Compute([]calendar.Event{late}, testWeek(), opts)
	assert.Len(t, l.TimedByDay["2025-03-10"], 1)
	assert.Len(t, l.TimedByDay["2025-03-11"], 1)
}
