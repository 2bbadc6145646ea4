// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the event-planner API.

# Handler Types

  - AuthHandler: Register, login, logout, profile and account deletion
  - EventHandler: Event CRUD and per-event guest lists
  - GuestHandler: Guest CRUD
  - AttendanceHandler: Invitations and RSVPs

Handlers are created with the store they read from:

	eventHandler := handlers.NewEventHandler(store)

Everything except register, login and logout expects the authenticated
planner on the request context (see middleware.RequireAuth). Lookups by id
are scoped to that planner, so another planner's record is a 404.

# Errors

Account and event problems answer 400 with {"error": "..."}. Guest and
attendance validation collects every problem and answers 422 with
{"errors": [...]}. Unexpected failures are logged and answer 500 with a
generic message.
*/
package handlers
