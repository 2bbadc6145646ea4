// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the event-planner API.

	mux := router.NewRouter(store, sessions)

# Endpoints

Operational:

	GET /health  - Database ping
	GET /metrics - Prometheus metrics

Accounts (public):

	POST /register       - Create a planner and log in
	POST /login          - Log in by username or email
	GET|POST /logout     - End the session

Accounts (session required):

	GET    /check_session - Current planner
	GET    /profile       - Planner with stats
	DELETE /profile       - Delete the planner and everything it owns

Events, guests and attendances (session required):

	GET|POST            /events
	GET|PATCH|DELETE    /events/{id}
	GET                 /events/{event_id}/guests
	GET|POST            /guests
	GET|PATCH|DELETE    /guests/{id}
	GET|POST            /attendances
	GET|PATCH|DELETE    /attendances/{id}

Session-guarded routes go through middleware.RequireAuth, which puts the
planner on the request context. Records owned by another planner answer 404.
*/
package router
