package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"kindSparkAPI/internal/event"
	"kindSparkAPI/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")

	events, err := h.eventService.GetEvents(ctx, category)
	if err != nil {
		log.Printf("GetEvents: failed to fetch events: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []*event.EventWithCount{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func (h *EventHandler) GetEventDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	eventID, err := uuid.Parse(mux.Vars(r)["eventId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	detail, err := h.eventService.GetEventDetail(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("GetEventDetail: failed for event %s: %v", eventID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

func (h *EventHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	eventID, err := uuid.Parse(mux.Vars(r)["eventId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	participation, err := h.eventService.JoinEvent(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("JoinEvent: user %s failed to join %s: %v", userID, eventID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to join event")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]*event.Participation{"participation": participation})
}

func (h *EventHandler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	eventID, err := uuid.Parse(mux.Vars(r)["eventId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	result, err := h.eventService.CompleteEvent(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotEligible) {
			respondWithError(w, http.StatusBadRequest, "Not joined or already completed")
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event or pet not found")
			return
		}
		log.Printf("CompleteEvent: user %s failed to complete %s: %v", userID, eventID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to complete event")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
