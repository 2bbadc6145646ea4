// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
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
	msgInvalidJSON   = "Invalid JSON"
	msgDatabaseError = "Database error"
	msgUnexpected    = "An unexpected error occurred. Please try again."
)

// currentPlanner returns the planner RequireAuth put in the context
func currentPlanner(w http.ResponseWriter, r *http.Request) (*models.Planner, bool) {
	p, ok := middleware.PlannerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
	}
	return p, ok
}

// pathID parses a positive integer path value
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// ownedID resolves the current planner and the {param} id. A malformed id
// gets the same 404 as a missing record.
func ownedID(w http.ResponseWriter, r *http.Request, param, notFound string) (*models.Planner, int64, bool) {
	planner, ok := currentPlanner(w, r)
	if !ok {
		return nil, 0, false
	}
	id, ok := pathID(r, param)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
		return nil, 0, false
	}
	return planner, id, true
}

// loadOwned fetches the {param} record for the current planner with get.
// On failure the response has already been written.
func loadOwned[T any](
	w http.ResponseWriter,
	r *http.Request,
	param string,
	get func(ctx context.Context, plannerID, id int64) (*T, error),
	notFound string,
) (*T, bool) {
	planner, id, ok := ownedID(w, r, param, notFound)
	if !ok {
		return nil, false
	}

	v, err := get(r.Context(), planner.ID, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load record", "path", r.URL.Path, "planner_id", planner.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgDatabaseError)
		return nil, false
	}
	return v, true
}

// internalError logs err and writes a generic 500
func internalError(w http.ResponseWriter, msg string, err error, args ...any) {
	slog.Error(msg, append(args, "error", err)...)
	middleware.ErrorResponse(w, http.StatusInternalServerError, msgUnexpected)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// optional turns a blank string into nil
func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
