// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/middleware"
	"github.com/danielhkuo/event-planner/models"
)

const (
	msgEventNotFound    = "Event not found."
	msgEventRequired    = "Name, description and date are required."
	msgEventBlank       = "Name, description and date cannot be blank."
	msgEventInvalidDate = "Invalid date format. Use YYYY-MM-DD."
	msgEventInvalidTime = "Invalid time format. Use HH:MM (24hr)."
)

type EventHandler struct {
	store *db.Store
}

func NewEventHandler(store *db.Store) *EventHandler {
	return &EventHandler{store: store}
}

// eventValidationMessage maps an Event.Validate failure to its response text
func eventValidationMessage(err error, required string) (string, bool) {
	switch {
	case errors.Is(err, models.ErrRequired):
		return required, true
	case errors.Is(err, models.ErrInvalidDate):
		return msgEventInvalidDate, true
	case errors.Is(err, models.ErrInvalidTime):
		return msgEventInvalidTime, true
	}
	return "", false
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	events, err := h.store.ListEvents(r.Context(), planner.ID)
	if err != nil {
		internalError(w, "failed to list events", err, "planner_id", planner.ID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	event := &models.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Date:        strings.TrimSpace(req.Date),
		Venue:       optional(req.Venue),
		Time:        optional(req.Time),
		PlannerID:   planner.ID,
	}

	err := h.store.CreateEvent(r.Context(), event)
	if msg, ok := eventValidationMessage(err, msgEventRequired); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		internalError(w, "failed to create event", err, "planner_id", planner.ID)
		return
	}

	slog.Info("event created", "event_id", event.ID, "planner_id", planner.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.EventResponse{
		Message: "Event created successfully.",
		Event:   event,
	})
}

// Get handles GET /events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwned(w, r, "id", h.store.GetEvent, msgEventNotFound)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, event)
}

// Update handles PATCH /events/{id}. Omitted fields are left alone; an empty
// venue or time clears it.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgEventNotFound)
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	event, err := h.store.UpdateEvent(r.Context(), planner.ID, id, func(e *models.Event) error {
		if v := trimmed(req.Name); v != nil {
			e.Name = *v
		}
		if v := trimmed(req.Description); v != nil {
			e.Description = *v
		}
		if v := trimmed(req.Date); v != nil {
			e.Date = *v
		}
		if req.Venue != nil {
			e.Venue = optional(*req.Venue)
		}
		if req.Time != nil {
			e.Time = optional(*req.Time)
		}
		return nil
	})
	if errors.Is(err, db.ErrEventNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	if msg, ok := eventValidationMessage(err, msgEventBlank); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		internalError(w, "failed to update event", err, "event_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventResponse{
		Message: "Event updated successfully.",
		Event:   event,
	})
}

// Delete handles DELETE /events/{id}. The event's attendances are removed too.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgEventNotFound)
	if !ok {
		return
	}

	err := h.store.DeleteEvent(r.Context(), planner.ID, id)
	if errors.Is(err, db.ErrEventNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to delete event", err, "event_id", id)
		return
	}

	slog.Info("event deleted", "event_id", id, "planner_id", planner.ID)
	middleware.MessageResponse(w, http.StatusOK, "Event deleted successfully.")
}

// Guests handles GET /events/{event_id}/guests. With ?include_rsvp=true each
// guest carries its attendance id, RSVP status and plus-ones.
func (h *EventHandler) Guests(w http.ResponseWriter, r *http.Request) {
	planner, eventID, ok := ownedID(w, r, "event_id", msgEventNotFound)
	if !ok {
		return
	}

	invited, err := h.store.ListEventGuests(r.Context(), planner.ID, eventID)
	if errors.Is(err, db.ErrEventNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgEventNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to list event guests", err, "event_id", eventID)
		return
	}

	if r.URL.Query().Get("include_rsvp") == "true" {
		middleware.JSONResponse(w, http.StatusOK, invited)
		return
	}

	guests := make([]models.Guest, 0, len(invited))
	for _, g := range invited {
		guests = append(guests, g.Guest)
	}
	middleware.JSONResponse(w, http.StatusOK, guests)
}
