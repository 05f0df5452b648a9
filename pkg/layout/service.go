package layout

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klokku/weekgrid/internal/event_bus"
	"github.com/klokku/weekgrid/internal/utils"
	"github.com/klokku/weekgrid/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// EventProvider returns events whose span touches [from, to].
type EventProvider interface {
	GetEvents(ctx context.Context, from time.Time, to time.Time) ([]calendar.Event, error)
}

type Service interface {
	// GetWeekLayout returns the layout of the week containing date.
	// The result is shared and must not be modified.
	GetWeekLayout(ctx context.Context, date time.Time) (WeekLayout, error)
}

// DefaultCacheSize is the number of weeks kept by the layout cache.
const DefaultCacheSize = 32

type ServiceImpl struct {
	events   EventProvider
	opts     Options
	firstDay time.Weekday
	clock    utils.Clock

	// cache maps a week start DateKey to its layout for the current day only
	cache *lru.Cache[string, WeekLayout]

	mu         sync.Mutex
	today      string
	generation uint64
}

// NewService creates the layout service caching up to cacheSize weeks. When
// eventBus is not nil, cached weeks touched by a calendar change are dropped.
func NewService(events EventProvider, opts Options, firstDay time.Weekday, clock utils.Clock,
	eventBus *event_bus.EventBus, cacheSize int) (*ServiceImpl, error) {
	cache, err := lru.New[string, WeekLayout](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout cache: %w", err)
	}
	s := &ServiceImpl{
		events:   events,
		opts:     opts,
		firstDay: firstDay,
		clock:    clock,
		cache:    cache,
	}
	if eventBus != nil {
		event_bus.SubscribeTyped(eventBus, event_bus.CalendarEventChangedType,
			func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
				s.invalidate(e.Data.Start, e.Data.End)
				return nil
			})
	}
	return s, nil
}

func (s *ServiceImpl) GetWeekLayout(ctx context.Context, date time.Time) (WeekLayout, error) {
	loc := s.opts.location()
	now := s.clock.Now()
	week := WeekOf(date, s.firstDay, now, loc)
	key := DateKey(week.Start())

	// IsToday is part of every cached layout, so a new day invalidates all of them
	s.mu.Lock()
	if today := DateKey(StartOfDay(now, loc)); today != s.today {
		s.cache.Purge()
		s.today = today
		s.generation++
	}
	generation := s.generation
	s.mu.Unlock()

	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	// inclusive upper bound, events starting exactly at the next midnight are filtered out by day membership
	events, err := s.events.GetEvents(ctx, week.Start(), week.End())
	if err != nil {
		return WeekLayout{}, fmt.Errorf("failed to load events for week of %s: %w", key, err)
	}
	layout := Compute(events, week, s.opts)
	log.Debugf("computed layout for week of %s: %d events, %d multi-day rows",
		key, len(events), layout.MultiDay.RowCount)

	s.mu.Lock()
	// a change or a new day arrived while computing, the result may already be stale
	if s.generation == generation {
		s.cache.Add(key, layout)
	}
	s.mu.Unlock()
	return layout, nil
}

// CachedWeeks returns the number of weeks currently cached.
func (s *ServiceImpl) CachedWeeks() int {
	return s.cache.Len()
}

// invalidate drops cached weeks sharing a calendar day with [start, end].
func (s *ServiceImpl) invalidate(start, end time.Time) {
	loc := s.opts.location()
	first := StartOfDay(start, loc)
	last := StartOfDay(end, loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	for _, key := range s.cache.Keys() {
		layout, ok := s.cache.Peek(key)
		if !ok {
			continue
		}
		if start.IsZero() || end.IsZero() || (!layout.Week.Start().After(last) && first.Before(layout.Week.End())) {
			s.cache.Remove(key)
		}
	}
	log.Debugf("layout cache invalidated for %s - %s, %d weeks cached", first.Format(time.DateOnly), last.Format(time.DateOnly), s.cache.Len())
}
