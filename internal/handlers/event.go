package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"panic-alert-backend/internal/middleware"
	"panic-alert-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EventHandler handles panic-event HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// RecordEventRequest represents the request body for recording an event
type RecordEventRequest struct {
	Cause *string `json:"cause"`
}

// AmendCauseRequest represents the request body for amending a cause
type AmendCauseRequest struct {
	Cause string `json:"cause" validate:"required"`
}

// RecordEvent handles POST /api/panic-attacks
func (h *EventHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	// The cause is optional and so is the request body itself.
	var req RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.Record(ctx, identity.UserID, req.Cause)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to record panic event")
		respondError(w, "Failed to record panic event", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("event_id", event.ID).
		Msg("Panic event recorded")

	respondJSON(w, map[string]string{"id": event.ID}, http.StatusOK)
}

// ListEvents handles GET /api/panic-attacks
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	events, err := h.eventService.List(ctx, identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to list panic events")
		respondError(w, "Failed to list panic events", http.StatusInternalServerError)
		return
	}

	respondJSON(w, events, http.StatusOK)
}

// AmendCause handles PUT /api/panic-attacks/{event_id}
func (h *EventHandler) AmendCause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)
	eventID := chi.URLParam(r, "event_id")

	var req AmendCauseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.eventService.AmendCause(ctx, eventID, identity.UserID, req.Cause); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Str("event_id", eventID).
			Msg("Failed to amend panic event")
		respondError(w, "Failed to amend panic event", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("event_id", eventID).
		Msg("Panic event cause amended")

	respondJSON(w, map[string]string{"message": "Cause updated successfully"}, http.StatusOK)
}

// DeleteEvent handles DELETE /api/panic-attacks/{event_id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)
	eventID := chi.URLParam(r, "event_id")

	if err := h.eventService.Delete(ctx, eventID, identity.UserID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Str("event_id", eventID).
			Msg("Failed to delete panic event")
		respondError(w, "Failed to delete panic event", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("event_id", eventID).
		Msg("Panic event deleted")

	w.WriteHeader(http.StatusNoContent)
}
