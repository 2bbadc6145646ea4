// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/event-planner/models"
)

const eventSelect = `
	SELECT e.id, e.name, e.description, e.venue, e.event_date, e.event_time,
		e.planner_id, e.created_at, e.updated_at,
		(SELECT COUNT(DISTINCT a.guest_id) FROM attendances a WHERE a.event_id = e.id) AS guest_count
	FROM events e
`

// ListEvents returns the planner's events, soonest first
func (s *Store) ListEvents(ctx context.Context, plannerID int64) ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.SelectContext(ctx, &events, s.db.Rebind(eventSelect+`
		WHERE e.planner_id = ?
		ORDER BY e.event_date, e.event_time, e.id
	`), plannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent returns one event if plannerID owns it
func (s *Store) GetEvent(ctx context.Context, plannerID, id int64) (*models.Event, error) {
	return getOwned[models.Event](ctx, s.db,
		eventSelect+" WHERE e.id = ? AND e.planner_id = ?", plannerID, id, ErrEventNotFound)
}

// CreateEvent validates e and inserts it for e.PlannerID
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	now := s.now()
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO events (name, description, venue, event_date, event_time, planner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), e.Name, e.Description, e.Venue, e.Date, e.Time, e.PlannerID, now, now).Scan(&e.ID)
	if err != nil {
		return translate(fmt.Errorf("failed to insert event: %w", err))
	}

	e.CreatedAt = now
	e.UpdatedAt = now
	e.GuestCount = 0
	return nil
}

// UpdateEvent loads the event, applies mutate, validates and writes it back.
// Everything runs in one transaction.
func (s *Store) UpdateEvent(ctx context.Context, plannerID, id int64, mutate func(*models.Event) error) (*models.Event, error) {
	var updated *models.Event
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		e, err := getOwned[models.Event](ctx, tx,
			eventSelect+" WHERE e.id = ? AND e.planner_id = ?", plannerID, id, ErrEventNotFound)
		if err != nil {
			return err
		}
		if err := mutate(e); err != nil {
			return err
		}
		if err := e.Validate(); err != nil {
			return err
		}

		e.UpdatedAt = s.now()
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE events
			SET name = ?, description = ?, venue = ?, event_date = ?, event_time = ?, updated_at = ?
			WHERE id = ? AND planner_id = ?
		`), e.Name, e.Description, e.Venue, e.Date, e.Time, e.UpdatedAt, id, plannerID)
		if err != nil {
			return translate(fmt.Errorf("failed to update event: %w", err))
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEvent removes the event and its attendances
func (s *Store) DeleteEvent(ctx context.Context, plannerID, id int64) error {
	return s.deleteOwned(ctx, "events", plannerID, id, ErrEventNotFound)
}
