// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/middleware"
	"github.com/danielhkuo/event-planner/models"
)

const (
	msgAttendanceNotFound = "Attendance record not found."
	msgAttendanceIDs      = "guest_id and event_id are required."
	msgAlreadyInvited     = "This guest is already invited to this event."
	msgBlankRSVP          = "RSVP status cannot be blank."
	msgInvalidPlusOnes    = "Plus ones must be a non-negative integer."
)

type AttendanceHandler struct {
	store *db.Store
}

func NewAttendanceHandler(store *db.Store) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

// rsvpAndPlusOnes validates the optional fields shared by create and update
func rsvpAndPlusOnes(rsvp *string, rawPlusOnes []byte) (status *string, plusOnes *int, errs []string) {
	if rsvp != nil {
		s := strings.TrimSpace(*rsvp)
		if s == "" {
			errs = append(errs, msgBlankRSVP)
		}
		status = &s
	}

	n, supplied, err := models.ParsePlusOnes(rawPlusOnes)
	if err != nil {
		errs = append(errs, msgInvalidPlusOnes)
	} else if supplied {
		plusOnes = &n
	}
	return status, plusOnes, errs
}

// List handles GET /attendances, optionally filtered by ?event_id=
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	var eventID *int64
	if raw := r.URL.Query().Get("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "event_id must be an integer.")
			return
		}
		eventID = &id
	}

	attendances, err := h.store.ListAttendances(r.Context(), planner.ID, eventID)
	if err != nil {
		internalError(w, "failed to list attendances", err, "planner_id", planner.ID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, attendances)
}

// Create handles POST /attendances
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	var req models.CreateAttendanceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	var errs []string
	if req.GuestID <= 0 || req.EventID <= 0 {
		errs = append(errs, msgAttendanceIDs)
	}
	status, plusOnes, fieldErrs := rsvpAndPlusOnes(req.RSVPStatus, req.PlusOnes)
	errs = append(errs, fieldErrs...)
	if len(errs) > 0 {
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	attendance := &models.Attendance{
		GuestID:    req.GuestID,
		EventID:    req.EventID,
		PlannerID:  planner.ID,
		RSVPStatus: models.DefaultRSVPStatus,
	}
	if status != nil {
		attendance.RSVPStatus = *status
	}
	if plusOnes != nil {
		attendance.PlusOnes = *plusOnes
	}

	created, err := h.store.CreateAttendance(r.Context(), attendance)
	switch {
	case errors.Is(err, db.ErrGuestNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgGuestNotFound)
		return
	case errors.Is(err, db.ErrEventNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgEventNotFound)
		return
	case errors.Is(err, db.ErrConflict):
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, []string{msgAlreadyInvited})
		return
	case err != nil:
		internalError(w, "failed to create attendance", err, "planner_id", planner.ID)
		return
	}

	slog.Info("attendance created",
		"attendance_id", created.ID,
		"guest_id", created.GuestID,
		"event_id", created.EventID,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.AttendanceResponse{
		Message:    "Attendance created successfully.",
		Attendance: created,
	})
}

// Get handles GET /attendances/{id}
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	attendance, ok := loadOwned(w, r, "id", h.store.GetAttendance, msgAttendanceNotFound)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, attendance)
}

// Update handles PATCH /attendances/{id}. Only rsvp_status and plus_ones change.
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgAttendanceNotFound)
	if !ok {
		return
	}

	var req models.UpdateAttendanceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	status, plusOnes, errs := rsvpAndPlusOnes(req.RSVPStatus, req.PlusOnes)
	if len(errs) > 0 {
		middleware.ValidationErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	attendance, err := h.store.UpdateAttendance(r.Context(), planner.ID, id, func(a *models.Attendance) error {
		if status != nil {
			a.RSVPStatus = *status
		}
		if plusOnes != nil {
			a.PlusOnes = *plusOnes
		}
		return nil
	})
	if errors.Is(err, db.ErrAttendanceNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgAttendanceNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to update attendance", err, "attendance_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AttendanceResponse{
		Message:    "Attendance updated successfully.",
		Attendance: attendance,
	})
}

// Delete handles DELETE /attendances/{id}
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	planner, id, ok := ownedID(w, r, "id", msgAttendanceNotFound)
	if !ok {
		return
	}

	err := h.store.DeleteAttendance(r.Context(), planner.ID, id)
	if errors.Is(err, db.ErrAttendanceNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, msgAttendanceNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to delete attendance", err, "attendance_id", id)
		return
	}

	middleware.MessageResponse(w, http.StatusOK, "Attendance deleted successfully.")
}
