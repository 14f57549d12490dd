package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/auth"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

// EventHandler handles HTTP requests for alumni events.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetAll handles listing all events.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetAllEvents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles retrieving an event by its ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.service.GetEventByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles creating a new event, attributed to the calling admin.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}
	event.CreatedBy = claims.AccountID

	created, err := h.service.CreateEvent(event)
	if err != nil {
		log.Error().Err(err).Str("title", event.Title).Msg("Failed to create event")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles updating an event.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	updated, err := h.service.UpdateEvent(id, event)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles removing an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteEvent(id); err != nil {
		log.Warn().Err(err).Str("event_id", id).Msg("Failed to delete event")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
