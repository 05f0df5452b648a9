package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/weekgrid/internal/event_bus"
	"github.com/klokku/weekgrid/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) (*Service, *MemoryRepository, *utils.MockClock, *[]event_bus.CalendarEventChanged) {
	repo := NewMemoryRepository()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: now}
	changes := &[]event_bus.CalendarEventChanged{}
	event_bus.SubscribeTyped[event_bus.CalendarEventChanged](bus, event_bus.CalendarEventChangedType,
		func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
			*changes = append(*changes, e.Data)
			return nil
		})
	return NewService(repo, bus, clock), repo, clock, changes
}

func testEvent(name string, start time.Time, duration time.Duration) Event {
	return Event{Name: name, StartTime: start, EndTime: start.Add(duration), Type: Work}
}

func TestService_AddEvent(t *testing.T) {
	s, repo, _, changes := setupServiceTest(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	created, err := s.AddEvent(ctx, testEvent("Planning", start, time.Hour))

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)
	assert.Equal(t, 1, repo.Len())
	require.Len(t, *changes, 1)
	assert.Equal(t, event_bus.EventCreated, (*changes)[0].Action)
	assert.Equal(t, created.ID, (*changes)[0].ID)
}

func TestService_AddEvent_DefaultsTypeToPersonal(t *testing.T) {
	s, _, _, _ := setupServiceTest(t)
	event := testEvent("Reading", now, time.Hour)
	event.Type = ""

	created, err := s.AddEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, Personal, created.Type)
}

func TestService_AddEvent_RejectsInvalid(t *testing.T) {
	s, repo, _, changes := setupServiceTest(t)

	_, err := s.AddEvent(context.Background(), testEvent("Backwards", now, -time.Hour))

	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, *changes)
}

func TestService_ModifyEvent(t *testing.T) {
	s, _, clock, changes := setupServiceTest(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	created, err := s.AddEvent(ctx, testEvent("Planning", start, time.Hour))
	require.NoError(t, err)

	clock.Advance(time.Hour)
	update := *created
	update.Name = "Sprint planning"
	update.StartTime = start.Add(2 * time.Hour)
	update.EndTime = start.Add(4 * time.Hour)
	update.CreatedAt = time.Time{}
	modified, err := s.ModifyEvent(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, "Sprint planning", modified.Name)
	assert.Equal(t, now, modified.CreatedAt, "created at must be preserved")
	assert.Equal(t, now.Add(time.Hour), modified.UpdatedAt)

	stored, err := s.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *modified, *stored)

	require.Len(t, *changes, 2)
	last := (*changes)[1]
	assert.Equal(t, event_bus.EventUpdated, last.Action)
	assert.Equal(t, start, last.Start, "update covers the old span")
	assert.Equal(t, start.Add(4*time.Hour), last.End, "update covers the new span")
}

func TestService_ModifyEvent_NotFound(t *testing.T) {
	s, _, _, _ := setupServiceTest(t)
	event := testEvent("Ghost", now, time.Hour)
	event.ID = "missing"

	_, err := s.ModifyEvent(context.Background(), event)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_ModifyEvent_RequiresId(t *testing.T) {
	s, _, _, _ := setupServiceTest(t)

	_, err := s.ModifyEvent(context.Background(), testEvent("No id", now, time.Hour))

	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_DeleteEvent(t *testing.T) {
	s, repo, _, changes := setupServiceTest(t)
	ctx := context.Background()
	created, err := s.AddEvent(ctx, testEvent("Planning", now, time.Hour))
	require.NoError(t, err)

	err = s.DeleteEvent(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.Len())
	require.Len(t, *changes, 2)
	assert.Equal(t, event_bus.EventDeleted, (*changes)[1].Action)

	err = s.DeleteEvent(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_GetEvents(t *testing.T) {
	s, _, _, _ := setupServiceTest(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	for _, e := range []Event{
		testEvent("Late", day.Add(15*time.Hour), time.Hour),
		testEvent("Early", day.Add(9*time.Hour), time.Hour),
		testEvent("Yesterday", day.Add(-10*time.Hour), time.Hour),
		testEvent("Overnight", day.Add(-2*time.Hour), 4*time.Hour),
	} {
		_, err := s.AddEvent(ctx, e)
		require.NoError(t, err)
	}

	got, err := s.GetEvents(ctx, day, day.Add(24*time.Hour))

	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Overnight", "Early", "Late"}, names)

	_, err = s.GetEvents(ctx, day, day.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestMemoryRepository_TransactionRollback(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, err := repo.StoreEvent(ctx, Event{ID: "kept", Name: "Kept"})
	require.NoError(t, err)

	err = repo.WithTransaction(ctx, func(tx Repository) error {
		if _, err := tx.StoreEvent(ctx, Event{ID: "discarded"}); err != nil {
			return err
		}
		return errors.New("abort")
	})

	assert.EqualError(t, err, "abort")
	assert.Equal(t, 1, repo.Len())
	_, err = repo.GetEvent(ctx, "discarded")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
