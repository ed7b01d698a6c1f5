package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/slug"
)

// EventsHandler handles event endpoints.
type EventsHandler struct {
	events database.EventWriter
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(events database.EventWriter) *EventsHandler {
	return &EventsHandler{events: events}
}

// EventResponse is the JSON representation of an event.
type EventResponse struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	EventDate string `json:"event_date"`
}

func toEventResponse(e *database.Event) EventResponse {
	return EventResponse{
		UID:       e.UID,
		Name:      e.Name,
		Slug:      e.Slug,
		EventDate: e.EventDate.Format("2006-01-02"),
	}
}

// List returns all events, newest first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		log.Printf("listing events: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = toEventResponse(&events[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"events": resp,
		"count":  len(resp),
	})
}

// createEventRequest is the request body for creating an event.
type createEventRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}

// Create creates a new event. The URL slug is derived from the name.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	eventSlug := slug.Make(req.Name)
	if eventSlug == "" {
		respondError(w, http.StatusBadRequest, "name must contain at least one letter or digit")
		return
	}

	eventDate := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		eventDate = parsed
	}

	event := &database.Event{
		UID:       uuid.NewString(),
		Name:      req.Name,
		Slug:      eventSlug,
		EventDate: eventDate,
	}
	if err := h.events.CreateEvent(r.Context(), event); err != nil {
		log.Printf("creating event %s: %v", sanitizeForLog(req.Name), err)
		respondError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, toEventResponse(event))
}

// Get returns a single event by UID or slug.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "uid")

	event, err := h.events.GetEvent(r.Context(), ref)
	if err != nil {
		event, err = h.events.GetEventBySlug(r.Context(), ref)
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	respondJSON(w, http.StatusOK, toEventResponse(event))
}
