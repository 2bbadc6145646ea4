// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the event-planner API server.

Planners register an account, then manage their own events, guests and the
attendances (invitations) that link the two. Every record is private to the
planner that created it.

# Starting the Server

With no configuration the server uses a local SQLite file and in-memory
sessions:

	go run .

Or with flags:

	go run . -p 5555 -t postgres -d "postgres://..." -redis localhost:6379

Load a sample planner (test_planner / test-password123) with one event,
guest and attendance, then exit:

	go run . -seed

# Configuration

Values are read from flags, then the environment, then a .env file:

  - PORT (-p): Server port (default: 5555)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:event_planner.db)
  - REDIS_ADDR (-redis): Redis address for sessions; empty keeps them in memory
  - SESSION_TTL (-session-ttl): Idle session lifetime (default: 30m)
  - COOKIE_SECURE (-cookie-secure): Mark the session cookie Secure
  - ALLOWED_ORIGINS (-origins): Comma-separated CORS origins
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output
  - -seed: Replace the sample data and exit instead of serving

# Architecture

  - handlers: HTTP request handlers (auth, events, guests, attendances)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, session guard, JSON helpers
  - session: Cookie sessions backed by memory or Redis
  - models: Entities, request/response types and validation
  - auth: Password hashing and session ids
  - db: Schema and the sqlx-backed Store
  - cliparse: Configuration parsing
  - logging: slog handler setup

See package documentation for each component.
*/
package main
