// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/event-planner/models"
)

// Sample account created by Seed
const (
	SeedUsername   = "test_planner"
	SeedEmail      = "test@planner.com"
	SeedPassword   = "test-password123"
	SeedGuestEmail = "guest@example.com"
)

// SeedData holds the records Seed created
type SeedData struct {
	Planner    *models.Planner
	Event      *models.Event
	Guest      *models.Guest
	Attendance *models.Attendance
}

// Seed replaces the sample planner with a fresh copy owning one event, one
// guest and an Accepted invitation. Running it again yields the same data
// with new ids; other planners are untouched.
func (s *Store) Seed(ctx context.Context) (*SeedData, error) {
	// The sample guest email is globally unique, so clear it from any planner
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM planners WHERE username = ? OR email = ?"), SeedUsername, SeedEmail); err != nil {
			return fmt.Errorf("failed to clear sample planner: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM guests WHERE email = ?"), SeedGuestEmail); err != nil {
			return fmt.Errorf("failed to clear sample guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	planner := &models.Planner{Name: "Test Planner", Username: SeedUsername, Email: SeedEmail}
	if err := planner.SetPassword(SeedPassword); err != nil {
		return nil, fmt.Errorf("failed to hash sample password: %w", err)
	}
	if err := s.CreatePlanner(ctx, planner); err != nil {
		return nil, fmt.Errorf("failed to seed planner: %w", err)
	}

	venue, at := "Test Venue", "14:00"
	event := &models.Event{
		Name:        "Sample Event",
		Description: "This is a sample event for testing.",
		Venue:       &venue,
		Date:        "2025-07-01",
		Time:        &at,
		PlannerID:   planner.ID,
	}
	if err := s.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to seed event: %w", err)
	}

	guest := &models.Guest{
		Name:      "Sample Guest",
		Email:     SeedGuestEmail,
		Phone:     "1234567890",
		PlannerID: planner.ID,
	}
	if err := s.CreateGuest(ctx, guest); err != nil {
		return nil, fmt.Errorf("failed to seed guest: %w", err)
	}

	attendance, err := s.CreateAttendance(ctx, &models.Attendance{
		RSVPStatus: "Accepted",
		GuestID:    guest.ID,
		EventID:    event.ID,
		PlannerID:  planner.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed attendance: %w", err)
	}

	return &SeedData{Planner: planner, Event: event, Guest: guest, Attendance: attendance}, nil
}
