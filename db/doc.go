// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the data-access layer for planners, events, guests and attendances.

# Opening a Store

Open connects, pings and creates the schema in one step:

	store, err := db.Open(ctx, db.DialectSQLite, "file:planner.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Two dialects are supported: "sqlite" (modernc.org/sqlite, pure Go) and
"postgres" (lib/pq). Queries are written once with ? placeholders and
rebound by sqlx for the active driver. SQLite connections are opened with
foreign keys enabled so cascades behave the same in both dialects.

# Schema

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

  - planners: accounts; username and email are unique
  - events: owned by a planner; event_date is ISO text (YYYY-MM-DD)
  - guests: owned by a planner; email is unique across all planners
  - attendances: links one guest to one event for one planner

# Relationships

	planner 1──* event
	planner 1──* guest
	planner 1──* attendance
	event   1──* attendance
	guest   1──* attendance

All foreign keys use ON DELETE CASCADE. Deleting a planner removes
everything they own; deleting an event or guest removes its attendances.

# Ownership

Every read, update and delete of an owned record takes the caller's planner
ID. A record that exists but belongs to another planner is reported as
not found, never as forbidden.

# Errors

Lookups return ErrPlannerNotFound, ErrEventNotFound, ErrGuestNotFound or
ErrAttendanceNotFound, all of which wrap ErrNotFound. Uniqueness failures
wrap ErrConflict, whether they were caught by a pre-check or by the
database constraint. Validation failures come back as the models package
errors (models.ErrRequired and friends).

# Updates

Update methods take a mutate callback. The row is loaded, mutated,
validated and written back inside a single transaction:

	event, err := store.UpdateEvent(ctx, plannerID, id, func(e *models.Event) error {
		e.Name = "Renamed"
		return nil
	})
*/
package db
