// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with request logging:

	mux.HandleFunc("GET /events", middleware.WithLogging(handler))

Logs method, path, status, remote and duration_ms on completion, and records
Prometheus counters and latency histograms labelled by the mux pattern
(so /events/{id} is one series). MetricsHandler serves them.

# Authentication

RequireAuth resolves the session cookie to a planner:

	auth := middleware.RequireAuth(sessions, store)
	mux.HandleFunc("GET /events", middleware.WithLogging(auth(eventHandler.List)))

Inside the handler:

	planner, _ := middleware.PlannerFromContext(r.Context())

Failures:

  - no or expired session: 401 "Unauthorized. Please log in."
  - session for a deleted planner: 404 "Planner not found."

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

Credentials are allowed so the session cookie travels with requests.
An empty allow list reflects any origin.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")        // {"error": ...}
	middleware.ValidationErrors(w, http.StatusUnprocessableEntity, errs) // {"errors": [...]}
	middleware.MessageResponse(w, http.StatusOK, "Event deleted successfully.")

Parse JSON request bodies:

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

GetClientIP returns the original client IP (handles X-Forwarded-For,
X-Real-IP) and is included in the request log.
*/
package middleware
