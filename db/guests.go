// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/event-planner/models"
)

const guestColumns = `id, name, email, phone, planner_id, created_at, updated_at`

func (s *Store) ListGuests(ctx context.Context, plannerID int64) ([]models.Guest, error) {
	guests := []models.Guest{}
	err := s.db.SelectContext(ctx, &guests, s.db.Rebind(`
		SELECT `+guestColumns+` FROM guests WHERE planner_id = ? ORDER BY name, id
	`), plannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *Store) GetGuest(ctx context.Context, plannerID, id int64) (*models.Guest, error) {
	return getOwned[models.Guest](ctx, s.db,
		"SELECT "+guestColumns+" FROM guests WHERE id = ? AND planner_id = ?", plannerID, id, ErrGuestNotFound)
}

// CreateGuest validates g and inserts it. Guest emails are unique across all planners.
func (s *Store) CreateGuest(ctx context.Context, g *models.Guest) error {
	if err := g.Validate(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		taken, err := exists(ctx, tx, "SELECT 1 FROM guests WHERE email = ?", g.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrGuestEmailTaken
		}

		now := s.now()
		err = tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO guests (name, email, phone, planner_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`), g.Name, g.Email, g.Phone, g.PlannerID, now, now).Scan(&g.ID)
		if err != nil {
			return translate(fmt.Errorf("failed to insert guest: %w", err))
		}
		g.CreatedAt = now
		g.UpdatedAt = now
		return nil
	})
}

// UpdateGuest loads the guest, applies mutate, validates and writes it back
func (s *Store) UpdateGuest(ctx context.Context, plannerID, id int64, mutate func(*models.Guest) error) (*models.Guest, error) {
	var updated *models.Guest
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		g, err := getOwned[models.Guest](ctx, tx,
			"SELECT "+guestColumns+" FROM guests WHERE id = ? AND planner_id = ?", plannerID, id, ErrGuestNotFound)
		if err != nil {
			return err
		}
		if err := mutate(g); err != nil {
			return err
		}
		if err := g.Validate(); err != nil {
			return err
		}

		taken, err := exists(ctx, tx, "SELECT 1 FROM guests WHERE email = ? AND id <> ?", g.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrGuestEmailTaken
		}

		g.UpdatedAt = s.now()
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE guests SET name = ?, email = ?, phone = ?, updated_at = ?
			WHERE id = ? AND planner_id = ?
		`), g.Name, g.Email, g.Phone, g.UpdatedAt, id, plannerID)
		if err != nil {
			return translate(fmt.Errorf("failed to update guest: %w", err))
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteGuest removes the guest and every attendance that references it
func (s *Store) DeleteGuest(ctx context.Context, plannerID, id int64) error {
	return s.deleteOwned(ctx, "guests", plannerID, id, ErrGuestNotFound)
}

// ListEventGuests returns the guests invited to an owned event with their RSVP details
func (s *Store) ListEventGuests(ctx context.Context, plannerID, eventID int64) ([]models.EventGuest, error) {
	ok, err := exists(ctx, s.db, "SELECT 1 FROM events WHERE id = ? AND planner_id = ?", eventID, plannerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEventNotFound
	}

	guests := []models.EventGuest{}
	err = s.db.SelectContext(ctx, &guests, s.db.Rebind(`
		SELECT g.id, g.name, g.email, g.phone, g.planner_id, g.created_at, g.updated_at,
			a.id AS attendance_id, a.rsvp_status, a.plus_ones
		FROM attendances a
		JOIN guests g ON g.id = a.guest_id
		WHERE a.event_id = ? AND a.planner_id = ?
		ORDER BY g.name, g.id
	`), eventID, plannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event guests: %w", err)
	}
	return guests, nil
}
