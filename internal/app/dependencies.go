package app

import (
	"fmt"
	"time"

	"github.com/klokku/weekgrid/internal/config"
	"github.com/klokku/weekgrid/internal/event_bus"
	"github.com/klokku/weekgrid/internal/utils"
	"github.com/klokku/weekgrid/pkg/calendar"
	"github.com/klokku/weekgrid/pkg/layout"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	CalendarRepository calendar.Repository
	CalendarService    *calendar.Service
	CalendarHandler    *calendar.Handler

	LayoutOptions layout.Options
	WeekFirstDay  time.Weekday
	LayoutService *layout.ServiceImpl
	LayoutHandler *layout.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repo calendar.Repository, cfg config.Application) (*Dependencies, error) {
	opts, firstDay, err := layoutOptions(cfg.Layout)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{}
	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.CalendarRepository = repo
	deps.CalendarService = calendar.NewService(deps.CalendarRepository, deps.EventBus, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.LayoutOptions = opts
	deps.WeekFirstDay = firstDay
	deps.LayoutService, err = layout.NewService(deps.CalendarService, opts, firstDay, deps.Clock, deps.EventBus, cfg.Layout.CacheSize)
	if err != nil {
		return nil, err
	}
	deps.LayoutHandler = layout.NewHandler(deps.LayoutService, deps.Clock, opts.Location)

	return deps, nil
}

func layoutOptions(cfg config.Layout) (layout.Options, time.Weekday, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return layout.Options{}, time.Sunday, fmt.Errorf("invalid layout timezone %q: %w", cfg.Timezone, err)
	}
	firstDay, err := layout.ParseWeekday(cfg.WeekFirstDay)
	if err != nil {
		return layout.Options{}, time.Sunday, fmt.Errorf("invalid layout week first day: %w", err)
	}
	if cfg.StandardHourHeight <= 0 || cfg.CompactHourHeight <= 0 {
		return layout.Options{}, time.Sunday, fmt.Errorf("hour heights must be positive, got %v and %v",
			cfg.StandardHourHeight, cfg.CompactHourHeight)
	}

	return layout.Options{
		StandardHourHeight: cfg.StandardHourHeight,
		CompactHourHeight:  cfg.CompactHourHeight,
		Unit:               cfg.Unit,
		Location:           loc,
	}, firstDay, nil
}
