package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidEvent = errors.New("invalid event")
var ErrEventNotFound = errors.New("event not found")

type EventType string

const (
	Work      EventType = "work"
	Personal  EventType = "personal"
	Meeting   EventType = "meeting"
	Social    EventType = "social"
	Health    EventType = "health"
	Travel    EventType = "travel"
	Education EventType = "education"
)

var eventTypes = []EventType{Work, Personal, Meeting, Social, Health, Travel, Education}

func (t EventType) Valid() bool {
	for _, known := range eventTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Event struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
	// IsMultiDay is declared by the user, not derived from the span.
	IsMultiDay bool
	Type       EventType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StartTimestamp returns the start as epoch milliseconds.
func (e Event) StartTimestamp() int64 {
	return e.StartTime.UnixMilli()
}

// EndTimestamp returns the end as epoch milliseconds.
func (e Event) EndTimestamp() int64 {
	return e.EndTime.UnixMilli()
}

func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

func (e Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEvent)
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end times are required", ErrInvalidEvent)
	}
	if !e.EndTime.After(e.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidEvent)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}
