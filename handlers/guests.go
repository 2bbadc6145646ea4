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
	msgGuestNotFound   = "Guest not found."
	msgGuestEmailTaken = "A guest with this email already exists."
	msgInvalidEmail    = "Invalid email format."
	msgInvalidPhone    = "Invalid phone number format."
)

type GuestHandler struct {
	store *db.Store
}

func NewGuestHandler(store *db.Store) *GuestHandler {
	return &GuestHandler{store: store}
}

// List handles GET /guests
func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	guests, err := h.store.ListGuests(r.Context(), planner.ID)
	if err != nil {
		internalError(w, "failed to list guests", err, "planner_id", planner.ID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, guests)
}

// Create handles POST /guests. Every problem with the input is reported at once.
func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	var req models.CreateGuestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	guest := &models.Guest{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		PlannerID: planner.ID,
	}

	var errs []string
	if guest.Name == "" {
		errs = append(errs, "Guest's name is required.")
	}
	if guest.Email == "" {
		errs = append(errs, "Guest's email address is required.")
	} else if !models.ValidateEmail(guest.Email) {
		errs = append(errs, msgInvalidEmail)
	}
	if guest.Phone == "" {
		errs = append(errs, "Guest's phone number is required.")
	} else if !models.ValidatePhone(guest.Phone) {
		errs = append(errs, msgInvalidPhone)
	}
	if len(errs) > 0 {
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	err := h.store.CreateGuest(r.Context(), guest)
	if errors.Is(err, db.ErrConflict) {
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, []string{msgGuestEmailTaken})
		return
	}
	if err != nil {
		internalError(w, "failed to create guest", err, "planner_id", planner.ID)
		return
	}

	slog.Info("guest created", "guest_id", guest.ID, "planner_id", planner.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.GuestResponse{
		Message: "Guest created successfully.",
		Guest:   guest,
	})
}

// Get handles GET /guests/{id}
func (h *GuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	guest, ok := loadOwned(w, r, "id", h.store.GetGuest, msgGuestNotFound)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, guest)
}

// Update handles PATCH /guests/{id}. Email and phone are checked only when supplied.
func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgGuestNotFound)
	if !ok {
		return
	}

	var req models.UpdateGuestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	name, email, phone := trimmed(req.Name), trimmed(req.Email), trimmed(req.Phone)

	var errs []string
	if name != nil && *name == "" {
		errs = append(errs, "Guest's name cannot be blank.")
	}
	if email != nil && !models.ValidateEmail(*email) {
		errs = append(errs, msgInvalidEmail)
	}
	if phone != nil && !models.ValidatePhone(*phone) {
		errs = append(errs, msgInvalidPhone)
	}
	if len(errs) > 0 {
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	guest, err := h.store.UpdateGuest(r.Context(), planner.ID, id, func(g *models.Guest) error {
		if name != nil {
			g.Name = *name
		}
		if email != nil {
			g.Email = *email
		}
		if phone != nil {
			g.Phone = *phone
		}
		return nil
	})
	switch {
	case errors.Is(err, db.ErrGuestNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgGuestNotFound)
		return
	case errors.Is(err, db.ErrConflict):
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, []string{msgGuestEmailTaken})
		return
	case err != nil:
		internalError(w, "failed to update guest", err, "guest_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GuestResponse{
		Message: "Guest updated successfully.",
		Guest:   guest,
	})
}

// Delete handles DELETE /guests/{id}. The guest's attendances are removed too.
func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgGuestNotFound)
	if !ok {
		return
	}

	err := h.store.DeleteGuest(r.Context(), planner.ID, id)
	if errors.Is(err, db.ErrGuestNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgGuestNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to delete guest", err, "guest_id", id)
		return
	}

	slog.Info("guest deleted", "guest_id", id, "planner_id", planner.ID)
	middleware.MessageResponse(w, http.StatusOK, "Guest deleted successfully.")
}
