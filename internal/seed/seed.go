// Package seed loads demo calendar events from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/klokku/weekgrid/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is the file format:
//
//	events:
//	  - name: Offsite
//	    type: travel
//	    start: 2025-03-10T09:00:00Z
//	    end: 2025-03-12T17:00:00Z
//	    multiDay: true
//	  - name: Standup
//	    type: meeting
//	    day: 1          # days after today
//	    at: "09:00"
//	    duration: 30m
//
// Absolute start/end win over day/at/duration.
type Fixture struct {
	Events []FixtureEvent `yaml:"events"`
}

type FixtureEvent struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Start    time.Time     `yaml:"start"`
	End      time.Time     `yaml:"end"`
	MultiDay bool          `yaml:"multiDay"`
	Day      int           `yaml:"day"`
	At       string        `yaml:"at"`
	Duration time.Duration `yaml:"duration"`
}

type EventAdder interface {
	AddEvent(ctx context.Context, event calendar.Event) (*calendar.Event, error)
}

func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return fixture, nil
}

// Event resolves relative entries against the day of now in loc.
func (f FixtureEvent) Event(now time.Time, loc *time.Location) (calendar.Event, error) {
	start, end := f.Start, f.End
	if start.IsZero() {
		at, err := time.ParseInLocation("15:04", f.At, loc)
		if err != nil {
			return calendar.Event{}, fmt.Errorf("%w: event %q: 'at' must be HH:MM", ErrInvalidFixture, f.Name)
		}
		y, m, d := now.In(loc).Date()
		start = time.Date(y, m, d+f.Day, at.Hour(), at.Minute(), 0, 0, loc)
		end = start.Add(f.Duration)
	}
	return calendar.Event{
		Name:       f.Name,
		StartTime:  start,
		EndTime:    end,
		IsMultiDay: f.MultiDay,
		Type:       calendar.EventType(f.Type),
	}, nil
}

// Apply adds every fixture event and stops at the first failure.
func Apply(ctx context.Context, fixture Fixture, adder EventAdder, now time.Time, loc *time.Location) (int, error) {
	added := 0
	for _, fe := range fixture.Events {
		event, err := fe.Event(now, loc)
		if err != nil {
			return added, err
		}
		stored, err := adder.AddEvent(ctx, event)
		if err != nil {
			return added, fmt.Errorf("failed to seed event %q: %w", fe.Name, err)
		}
		log.Tracef("seeded event %s %q", stored.ID, stored.Name)
		added++
	}
	return added, nil
}
