// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/models"
	"github.com/danielhkuo/event-planner/session"
)

type contextKey int

const plannerKey contextKey = iota

const (
	MsgUnauthorized    = "Unauthorized. Please log in."
	MsgPlannerNotFound = "Planner not found."
)

// PlannerGetter loads a planner by id. *db.Store satisfies it.
type PlannerGetter interface {
	GetPlanner(ctx context.Context, id int64) (*models.Planner, error)
}

// RequireAuth rejects requests without a live session and puts the session's
// planner in the request context.
func RequireAuth(sessions *session.Manager, planners PlannerGetter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			plannerID, err := sessions.Load(w, r)
			if errors.Is(err, session.ErrNoSession) {
				ErrorResponse(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			if err != nil {
				slog.Error("failed to load session", "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Session error")
				return
			}

			planner, err := planners.GetPlanner(r.Context(), plannerID)
			if errors.Is(err, db.ErrPlannerNotFound) {
				// The account is gone; drop the dangling session
				if err := sessions.Clear(w, r); err != nil {
					slog.Warn("failed to clear session", "error", err)
				}
				ErrorResponse(w, http.StatusNotFound, MsgPlannerNotFound)
				return
			}
			if err != nil {
				slog.Error("failed to load planner", "planner_id", plannerID, "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}

			next(w, r.WithContext(WithPlanner(r.Context(), planner)))
		}
	}
}

// WithPlanner returns a copy of ctx carrying the authenticated planner
func WithPlanner(ctx context.Context, p *models.Planner) context.Context {
	return context.WithValue(ctx, plannerKey, p)
}

// PlannerFromContext returns the planner stored by RequireAuth
func PlannerFromContext(ctx context.Context) (*models.Planner, bool) {
	p, ok := ctx.Value(plannerKey).(*models.Planner)
	return p, ok && p != nil
}
