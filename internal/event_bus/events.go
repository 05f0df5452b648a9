package event_bus

import "time"

const CalendarEventChangedType EventType = "calendar.event.changed"

type ChangeAction string

const (
	EventCreated ChangeAction = "created"
	EventUpdated ChangeAction = "updated"
	EventDeleted ChangeAction = "deleted"
)

// CalendarEventChanged is published after any calendar event mutation.
// Start and End describe the affected span; for updates they cover the old and new span.
type CalendarEventChanged struct {
	ID     string
	Action ChangeAction
	Start  time.Time
	End    time.Time
}
