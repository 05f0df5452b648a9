package layout

import (
	"cmp"
	"slices"
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
)

// ProcessedMultiDayEvent carries 1-based, end-exclusive grid coordinates for the
// all-day strip above the timed grid.
type ProcessedMultiDayEvent struct {
	calendar.Event
	GridRowStart    int
	GridRowEnd      int
	GridColumnStart int
	GridColumnEnd   int
}

// Span is the number of visible day columns the event covers.
func (p ProcessedMultiDayEvent) Span() int {
	return p.GridColumnEnd - p.GridColumnStart
}

func (p ProcessedMultiDayEvent) startCol() int { return p.GridColumnStart - 1 }
func (p ProcessedMultiDayEvent) endCol() int   { return p.GridColumnEnd - 2 }

type MultiDayLayout struct {
	Events   []ProcessedMultiDayEvent
	RowCount int
}

// PlaceMultiDayEvents assigns each visible multi-day event a column span,
// clipped to the week, and the first row where that span is still free.
// Wider events are placed first. Events not flagged multi-day, or not
// occurring in the week, are ignored.
func PlaceMultiDayEvents(events []calendar.Event, week Week, loc *time.Location) MultiDayLayout {
	placed := make([]ProcessedMultiDayEvent, 0, len(events))
	for _, event := range events {
		if !event.IsMultiDay || !week.Contains(event, loc) {
			continue
		}
		startCol, endCol := columnSpan(event, week, loc)
		placed = append(placed, ProcessedMultiDayEvent{
			Event:           event,
			GridColumnStart: startCol + 1,
			GridColumnEnd:   endCol + 2,
		})
	}

	slices.SortStableFunc(placed, func(a, b ProcessedMultiDayEvent) int {
		return cmp.Compare(b.Span(), a.Span())
	})

	var rows [][DaysInWeek]bool
	for i := range placed {
		startCol, endCol := placed[i].startCol(), placed[i].endCol()
		row := 0
		for row < len(rows) && occupied(rows[row], startCol, endCol) {
			row++
		}
		if row == len(rows) {
			rows = append(rows, [DaysInWeek]bool{})
		}
		for col := startCol; col <= endCol; col++ {
			rows[row][col] = true
		}
		placed[i].GridRowStart = row + 1
		placed[i].GridRowEnd = row + 2
	}

	return MultiDayLayout{Events: placed, RowCount: len(rows)}
}

// columnSpan returns the inclusive 0-based day columns of the event, clamped to
// the visible week.
func columnSpan(event calendar.Event, week Week, loc *time.Location) (int, int) {
	startDay := StartOfDay(event.StartTime, loc)
	endDay := StartOfDay(event.EndTime, loc)

	startCol := 0
	if !startDay.Before(week.Start()) {
		startCol = max(week.IndexOf(startDay), 0)
	}

	endCol := DaysInWeek - 1
	if !endDay.After(week[DaysInWeek-1].Date) {
		endCol = week.IndexOf(endDay)
		if endCol < 0 {
			// ends before the week, only reachable when end precedes start
			endCol = startCol
		}
	}
	return startCol, endCol
}

func occupied(row [DaysInWeek]bool, startCol, endCol int) bool {
	for col := startCol; col <= endCol; col++ {
		if row[col] {
			return true
		}
	}
	return false
}
