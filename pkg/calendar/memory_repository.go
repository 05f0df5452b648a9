package calendar

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps events in process memory. It backs the "memory"
// storage mode and the service tests.
type MemoryRepository struct {
	mu             sync.RWMutex
	items          map[string]Event
	inTransaction  bool
	transactionErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]Event),
	}
}

func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	snapshot := make(map[string]Event, len(r.items))
	for k, v := range r.items {
		snapshot[k] = v
	}
	r.inTransaction = true
	r.transactionErr = nil
	r.mu.Unlock()

	err := fn(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inTransaction = false
	if err != nil || r.transactionErr != nil {
		r.items = snapshot
		if err != nil {
			return err
		}
		return r.transactionErr
	}
	return nil
}

func (r *MemoryRepository) StoreEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[event.ID] = event
	return event, nil
}

func (r *MemoryRepository) GetEvent(ctx context.Context, id string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.items[id]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *MemoryRepository) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0)
	for _, event := range r.items {
		if !event.StartTime.After(to) && !event.EndTime.Before(from) {
			result = append(result, event)
		}
	}

	// map iteration order is random; match the SQL ordering
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[event.ID]; !exists {
		return Event{}, ErrEventNotFound
	}
	r.items[event.ID] = event
	return event, nil
}

func (r *MemoryRepository) DeleteEvent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrEventNotFound
	}
	delete(r.items, id)
	return nil
}

// SetTransactionError makes the running transaction roll back with err.
func (r *MemoryRepository) SetTransactionError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactionErr = err
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
