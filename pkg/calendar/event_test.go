package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Validate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	valid := Event{Name: "Standup", StartTime: start, EndTime: start.Add(time.Hour), Type: Meeting}

	tests := []struct {
		name    string
		modify  func(e *Event)
		wantErr bool
	}{
		{"valid event", func(e *Event) {}, false},
		{"missing name", func(e *Event) { e.Name = "" }, true},
		{"missing start", func(e *Event) { e.StartTime = time.Time{} }, true},
		{"end equals start", func(e *Event) { e.EndTime = e.StartTime }, true},
		{"end before start", func(e *Event) { e.EndTime = e.StartTime.Add(-time.Minute) }, true},
		{"unknown type", func(e *Event) { e.Type = "party" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEvent)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvent_Timestamps(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := Event{StartTime: start, EndTime: start.Add(90 * time.Minute)}

	assert.Equal(t, start.UnixMilli(), e.StartTimestamp())
	assert.Equal(t, start.UnixMilli()+90*60*1000, e.EndTimestamp())
	assert.Equal(t, 90*time.Minute, e.Duration())
}
