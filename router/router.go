// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/handlers"
	"github.com/danielhkuo/event-planner/middleware"
	"github.com/danielhkuo/event-planner/session"
)

func NewRouter(store *db.Store, sessions *session.Manager) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, sessions)
	eventHandler := handlers.NewEventHandler(store)
	guestHandler := handlers.NewGuestHandler(store)
	attendanceHandler := handlers.NewAttendanceHandler(store)

	// authed wraps a handler with logging and the session guard
	requireAuth := middleware.RequireAuth(sessions, store)
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(requireAuth(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Accounts and sessions
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /check_session", authed(authHandler.CheckSession))
	mux.HandleFunc("GET /profile", authed(authHandler.Profile))
	mux.HandleFunc("DELETE /profile", authed(authHandler.DeleteAccount))

	// Events
	mux.HandleFunc("GET /events", authed(eventHandler.List))
	mux.HandleFunc("POST /events", authed(eventHandler.Create))
	mux.HandleFunc("GET /events/{id}", authed(eventHandler.Get))
	mux.HandleFunc("PATCH /events/{id}", authed(eventHandler.Update))
	mux.HandleFunc("DELETE /events/{id}", authed(eventHandler.Delete))
	mux.HandleFunc("GET /events/{event_id}/guests", authed(eventHandler.Guests))

	// Guests
	mux.HandleFunc("GET /guests", authed(guestHandler.List))
	mux.HandleFunc("POST /guests", authed(guestHandler.Create))
	mux.HandleFunc("GET /guests/{id}", authed(guestHandler.Get))
	mux.HandleFunc("PATCH /guests/{id}", authed(guestHandler.Update))
	mux.HandleFunc("DELETE /guests/{id}", authed(guestHandler.Delete))

	// Attendances (invitations)
	mux.HandleFunc("GET /attendances", authed(attendanceHandler.List))
	mux.HandleFunc("POST /attendances", authed(attendanceHandler.Create))
	mux.HandleFunc("GET /attendances/{id}", authed(attendanceHandler.Get))
	mux.HandleFunc("PATCH /attendances/{id}", authed(attendanceHandler.Update))
	mux.HandleFunc("DELETE /attendances/{id}", authed(attendanceHandler.Delete))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("event-planner API v1"))
	})

	return mux
}
