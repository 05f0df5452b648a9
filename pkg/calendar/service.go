package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/weekgrid/internal/event_bus"
	"github.com/klokku/weekgrid/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
	}
}

func (s *Service) AddEvent(ctx context.Context, event Event) (*Event, error) {
	if event.Type == "" {
		event.Type = Personal
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now

	stored, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	log.Debugf("stored event %s (%s - %s)", stored.ID, stored.StartTime, stored.EndTime)

	s.publish(ctx, event_bus.CalendarEventChanged{
		ID:     stored.ID,
		Action: event_bus.EventCreated,
		Start:  stored.StartTime,
		End:    stored.EndTime,
	})
	return &stored, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) GetEvents(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidEvent)
	}
	return s.repo.GetEvents(ctx, from, to)
}

// ModifyEvent replaces the mutable fields of an existing event. CreatedAt is
// kept from the stored record.
func (s *Service) ModifyEvent(ctx context.Context, event Event) (*Event, error) {
	if event.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidEvent)
	}
	if event.Type == "" {
		event.Type = Personal
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	var original, modified Event
	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		var err error
		original, err = repo.GetEvent(ctx, event.ID)
		if err != nil {
			return err
		}
		event.CreatedAt = original.CreatedAt
		event.UpdatedAt = s.clock.Now()
		modified, err = repo.UpdateEvent(ctx, event)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventChanged{
		ID:     modified.ID,
		Action: event_bus.EventUpdated,
		Start:  earliest(original.StartTime, modified.StartTime),
		End:    latest(original.EndTime, modified.EndTime),
	})
	return &modified, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, event_bus.CalendarEventChanged{
		ID:     id,
		Action: event_bus.EventDeleted,
		Start:  event.StartTime,
		End:    event.EndTime,
	})
	return nil
}

// publish announces a stored mutation. Subscribers see it even when ctx is
// already cancelled.
func (s *Service) publish(ctx context.Context, change event_bus.CalendarEventChanged) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.CalendarEventChangedType, change))
	if err != nil {
		// the mutation is already stored, subscribers only hold derived state
		log.Errorf("failed to publish %s for event %s: %v", change.Action, change.ID, err)
	}
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
