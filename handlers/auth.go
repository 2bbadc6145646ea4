// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/event-planner/auth"
	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/middleware"
	"github.com/danielhkuo/event-planner/models"
	"github.com/danielhkuo/event-planner/session"
)

type AuthHandler struct {
	store    *db.Store
	sessions *session.Manager
	now      func() time.Time
}

func NewAuthHandler(store *db.Store, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		store:    store,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required.")
		return
	}
	if req.Password != req.ConfirmPassword {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Passwords do not match.")
		return
	}
	if !models.ValidateEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid email format.")
		return
	}

	planner := &models.Planner{Name: req.Name, Username: req.Username, Email: req.Email}
	if err := planner.SetPassword(req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at most 72 bytes.")
			return
		}
		internalError(w, "failed to hash password", err)
		return
	}

	err := h.store.CreatePlanner(r.Context(), planner)
	switch {
	case errors.Is(err, db.ErrUsernameTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "This username already exists.")
		return
	case errors.Is(err, db.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "This email is already registered.")
		return
	case errors.Is(err, db.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username or email already in use.")
		return
	case err != nil:
		internalError(w, "failed to create planner", err)
		return
	}

	if err := h.sessions.Start(r.Context(), w, planner.ID); err != nil {
		internalError(w, "failed to start session", err, "planner_id", planner.ID)
		return
	}

	slog.Info("planner registered", "planner_id", planner.ID, "username", planner.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.PlannerResponse{
		Message: "Planner registered successfully.",
		Planner: planner,
	})
}

// Login handles POST /login. The username field also accepts an email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username/email and password are required.")
		return
	}

	planner, err := h.authenticate(r, identifier, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username/email or password.")
		return
	}
	if err != nil {
		internalError(w, "failed to look up planner", err)
		return
	}

	if err := h.sessions.Start(r.Context(), w, planner.ID); err != nil {
		internalError(w, "failed to start session", err, "planner_id", planner.ID)
		return
	}

	slog.Info("planner logged in", "planner_id", planner.ID)

	middleware.JSONResponse(w, http.StatusOK, models.PlannerResponse{
		Message: "Login successful.",
		Planner: planner,
	})
}

// authenticate returns auth.ErrInvalidCredentials for both an unknown
// account and a wrong password.
func (h *AuthHandler) authenticate(r *http.Request, identifier, password string) (*models.Planner, error) {
	planner, err := h.store.GetPlannerByLogin(r.Context(), identifier)
	if errors.Is(err, db.ErrPlannerNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !planner.CheckPassword(password) {
		return nil, auth.ErrInvalidCredentials
	}
	return planner, nil
}

// Logout handles POST and GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.Destroy(w, r)
	if errors.Is(err, session.ErrNoSession) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No active session.")
		return
	}
	if err != nil {
		internalError(w, "failed to destroy session", err)
		return
	}

	middleware.MessageResponse(w, http.StatusOK, "Logged out successfully.")
}

// CheckSession handles GET /check_session
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PlannerResponse{
		Message: "Planner is logged in.",
		Planner: planner,
	})
}

// Profile handles GET /profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	now := h.now()
	stats, err := h.store.PlannerStats(r.Context(), planner.ID, now.Format(models.DateLayout))
	if err != nil {
		internalError(w, "failed to compute profile", err, "planner_id", planner.ID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{
		Message: "Profile retrieved successfully.",
		Profile: &models.Profile{
			Planner:      *planner,
			PlannerStats: *stats,
			MemberSince:  humanize.RelTime(planner.CreatedAt, now, "ago", "from now"),
		},
	})
}

// DeleteAccount handles DELETE /profile. Everything the planner owns goes with it.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return
	}

	err := h.store.DeletePlanner(r.Context(), planner.ID)
	if errors.Is(err, db.ErrPlannerNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.MsgPlannerNotFound)
		return
	}
	if err != nil {
		internalError(w, "failed to delete planner", err, "planner_id", planner.ID)
		return
	}

	if err := h.sessions.Clear(w, r); err != nil {
		slog.Warn("failed to clear session after account deletion", "planner_id", planner.ID, "error", err)
	}

	slog.Info("planner deleted", "planner_id", planner.ID)
	middleware.MessageResponse(w, http.StatusOK, "Account deleted successfully.")
}
