package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/weekgrid/internal/rest"
	log "github.com/sirupsen/logrus"
)

// Handler exposes calendar event CRUD over HTTP.
type Handler struct {
	calendar *Service
}

// EventDTO is the JSON form of an Event. Start and end are epoch milliseconds;
// createdAt and updatedAt are RFC3339 and ignored on input.
type EventDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartTimestamp int64  `json:"startTimestamp"`
	EndTimestamp   int64  `json:"endTimestamp"`
	IsMultiDay     bool   `json:"isMultiDay"`
	Type           string `json:"type"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

// GetEvents lists events touching [from, to], both RFC3339 query parameters.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in RFC3339 format")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in RFC3339 format")
		return
	}

	events, err := h.calendar.GetEvents(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.calendar.AddEvent(r.Context(), DTOToEvent(eventDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, EventToDTO(*created))
}

// UpdateEvent replaces the event named by the eventId path variable.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if id := mux.Vars(r)["eventId"]; id != "" {
		eventDTO.ID = id
	}

	modified, err := h.calendar.ModifyEvent(r.Context(), DTOToEvent(eventDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, EventToDTO(*modified))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	if err := h.calendar.DeleteEvent(r.Context(), eventId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", "")
	default:
		log.Errorf("calendar request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// EventToDTO converts an Event to its JSON form.
func EventToDTO(e Event) EventDTO {
	dto := EventDTO{
		ID:             e.ID,
		Name:           e.Name,
		StartTimestamp: e.StartTimestamp(),
		EndTimestamp:   e.EndTimestamp(),
		IsMultiDay:     e.IsMultiDay,
		Type:           string(e.Type),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !e.UpdatedAt.IsZero() {
		dto.UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return dto
}

// DTOToEvent converts to the domain type. Created/updated stamps are owned by
// the service and are not read from the request.
func DTOToEvent(dto EventDTO) Event {
	return Event{
		ID:         dto.ID,
		Name:       dto.Name,
		StartTime:  time.UnixMilli(dto.StartTimestamp),
		EndTime:    time.UnixMilli(dto.EndTimestamp),
		IsMultiDay: dto.IsMultiDay,
		Type:       EventType(dto.Type),
	}
}
