package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf_SundayFirst(t *testing.T) {
	now := at(3, 8, 0)

	week := WeekOf(at(3, 15, 0), time.Sunday, now, time.UTC)

	assert.Equal(t, weekStart, week.Start())
	assert.Equal(t, weekStart.AddDate(0, 0, 7), week.End())
	assert.Equal(t, "Sun", week[0].DayName)
	assert.Equal(t, 9, week[0].DayNumber)
	assert.Equal(t, "Sat", week[6].DayName)
	assert.Equal(t, 15, week[6].DayNumber)
	for i, d := range week {
		assert.Equal(t, i == 3, d.IsToday, "day %d", i)
	}
}

func TestWeekOf_MondayFirst(t *testing.T) {
	// Sunday belongs to the week that started the Monday before
	week := WeekOf(at(0, 10, 0), time.Monday, at(0, 0, 0), time.UTC)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), week.Start())
	assert.Equal(t, "Mon", week[0].DayName)
	assert.True(t, week[6].IsToday)
}

func TestWeek_IndexOf(t *testing.T) {
	week := WeekOf(weekStart, time.Sunday, weekStart, time.UTC)

	assert.Equal(t, 0, week.IndexOf(weekStart))
	assert.Equal(t, 6, week.IndexOf(at(6, 0, 0)))
	assert.Equal(t, -1, week.IndexOf(at(7, 0, 0)))
}

func TestWeek_Contains(t *testing.T) {
	week := WeekOf(weekStart, time.Sunday, weekStart, time.UTC)

	assert.True(t, week.Contains(timed("a", at(6, 22, 0), at(6, 23, 0)), time.UTC))
	assert.True(t, week.Contains(multiDay("long", at(-3, 0, 0), at(10, 0, 0)), time.UTC))
	assert.False(t, week.Contains(timed("b", at(7, 0, 0), at(7, 1, 0)), time.UTC))
	assert.False(t, week.Contains(timed("c", at(-1, 9, 0), at(-1, 10, 0)), time.UTC))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekOf_Range(t *testing.T) {
	type args struct {
		date         time.Time
		weekStartDay time.Weekday
	}
	tests := []struct {
		name      string
		args      args
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "should return full week range when start day is Monday",
			args:      args{date: time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC), weekStartDay: time.Monday},
			wantStart: time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "should return full week range when start day is Sunday",
			args:      args{date: time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC), weekStartDay: time.Sunday},
			wantStart: time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 10, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "should ignore the time of day",
			args:      args{date: time.Date(2023, 10, 21, 23, 59, 0, 0, time.UTC), weekStartDay: time.Saturday},
			wantStart: time.Date(2023, 10, 21, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 10, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekOf(tt.args.date, tt.args.weekStartDay, tt.args.date, time.UTC)
			assert.Equalf(t, tt.wantStart, week.Start(), "WeekOf(%v, %v)", tt.args.date, tt.args.weekStartDay)
			assert.Equalf(t, tt.wantEnd, week.End(), "WeekOf(%v, %v)", tt.args.date, tt.args.weekStartDay)
		})
	}
}
