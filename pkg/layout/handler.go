package layout

import (
	"net/http"
	"time"

	"github.com/klokku/weekgrid/internal/rest"
	"github.com/klokku/weekgrid/internal/utils"
	"github.com/klokku/weekgrid/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// Handler serves computed week layouts over HTTP.
type Handler struct {
	layout Service
	clock  utils.Clock
	loc    *time.Location
}

// WeekDayDTO is one column header of the week grid. Date is YYYY-MM-DD.
type WeekDayDTO struct {
	Date      string `json:"date"`
	DayName   string `json:"dayName"`
	DayNumber int    `json:"dayNumber"`
	IsToday   bool   `json:"isToday"`
}

// PositionedEventDTO is a timed event with CSS-ready geometry: top and height
// in the configured unit, left and width as percentages of the day column.
type PositionedEventDTO struct {
	calendar.EventDTO
	Top    string `json:"top"`
	Height string `json:"height"`
	Left   string `json:"left"`
	Width  string `json:"width"`
	ZIndex int    `json:"zIndex"`
}

// MultiDayEventDTO places an event in the all-day strip using 1-based CSS grid
// lines, end exclusive.
type MultiDayEventDTO struct {
	calendar.EventDTO
	GridRowStart    int `json:"gridRowStart"`
	GridRowEnd      int `json:"gridRowEnd"`
	GridColumnStart int `json:"gridColumnStart"`
	GridColumnEnd   int `json:"gridColumnEnd"`
}

// MultiDayLayoutDTO is the all-day strip; RowCount sizes the grid.
type MultiDayLayoutDTO struct {
	Events   []MultiDayEventDTO `json:"events"`
	RowCount int                `json:"rowCount"`
}

// WeekLayoutDTO is the response of GET /api/layout/week. HourHeights and
// HourOffsets always have 24 entries, and PositionedEventsByDay has a key,
// possibly with an empty list, for each of the seven days.
type WeekLayoutDTO struct {
	WeekDays              []WeekDayDTO                    `json:"weekDays"`
	Unit                  string                          `json:"unit"`
	HourHeights           []float64                       `json:"hourHeights"`
	HourOffsets           []float64                       `json:"hourOffsets"`
	TotalHeight           float64                         `json:"totalHeight"`
	PositionedEventsByDay map[string][]PositionedEventDTO `json:"positionedEventsByDay"`
	MultiDay              MultiDayLayoutDTO               `json:"multiDay"`
}

// NewHandler creates the layout handler. Dates in requests are read in loc.
func NewHandler(layout Service, clock utils.Clock, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{layout: layout, clock: clock, loc: loc}
}

// GetWeek serves the layout of the week containing ?date=YYYY-MM-DD, today when absent.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date := h.clock.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, dateParam, h.loc)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	layout, err := h.layout.GetWeekLayout(r.Context(), date)
	if err != nil {
		log.Errorf("failed to compute week layout: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, WeekLayoutToDTO(layout))
}

// WeekLayoutToDTO converts a computed layout to its JSON form.
func WeekLayoutToDTO(l WeekLayout) WeekLayoutDTO {
	days := make([]WeekDayDTO, 0, DaysInWeek)
	for _, d := range l.Week {
		days = append(days, WeekDayDTO{
			Date:      DateKey(d.Date),
			DayName:   d.DayName,
			DayNumber: d.DayNumber,
			IsToday:   d.IsToday,
		})
	}

	byDay := make(map[string][]PositionedEventDTO, len(l.TimedByDay))
	for key, events := range l.TimedByDay {
		dtos := make([]PositionedEventDTO, 0, len(events))
		for _, e := range events {
			dtos = append(dtos, PositionedEventDTO{
				EventDTO: calendar.EventToDTO(e.Event),
				Top:      e.TopCSS(),
				Height:   e.HeightCSS(),
				Left:     e.LeftCSS(),
				Width:    e.WidthCSS(),
				ZIndex:   e.ZIndex,
			})
		}
		byDay[key] = dtos
	}

	multiDay := make([]MultiDayEventDTO, 0, len(l.MultiDay.Events))
	for _, e := range l.MultiDay.Events {
		multiDay = append(multiDay, MultiDayEventDTO{
			EventDTO:        calendar.EventToDTO(e.Event),
			GridRowStart:    e.GridRowStart,
			GridRowEnd:      e.GridRowEnd,
			GridColumnStart: e.GridColumnStart,
			GridColumnEnd:   e.GridColumnEnd,
		})
	}

	return WeekLayoutDTO{
		WeekDays:              days,
		Unit:                  l.Unit,
		HourHeights:           l.Hours.Heights[:],
		HourOffsets:           l.Hours.Offsets[:],
		TotalHeight:           l.Hours.Total,
		PositionedEventsByDay: byDay,
		MultiDay:              MultiDayLayoutDTO{Events: multiDay, RowCount: l.MultiDay.RowCount},
	}
}
