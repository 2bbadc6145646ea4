// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/event-planner/models"
)

const plannerColumns = `id, name, username, email, password_hash, created_at, updated_at`

// CreatePlanner inserts a new planner. Username and email must be unused.
func (s *Store) CreatePlanner(ctx context.Context, p *models.Planner) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		taken, err := exists(ctx, tx, "SELECT 1 FROM planners WHERE username = ?", p.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = exists(ctx, tx, "SELECT 1 FROM planners WHERE email = ?", p.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		now := s.now()
		err = tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO planners (name, username, email, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`), p.Name, p.Username, p.Email, string(p.PasswordHash), now, now).Scan(&p.ID)
		if err != nil {
			return translate(fmt.Errorf("failed to insert planner: %w", err))
		}

		p.CreatedAt = now
		p.UpdatedAt = now
		return nil
	})
}

// GetPlanner retrieves a planner by ID
func (s *Store) GetPlanner(ctx context.Context, id int64) (*models.Planner, error) {
	var p models.Planner
	err := s.db.GetContext(ctx, &p,
		s.db.Rebind("SELECT "+plannerColumns+" FROM planners WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planner: %w", err)
	}
	return &p, nil
}

// GetPlannerByLogin finds a planner by username or email.
// An exact username match wins over an email match.
func (s *Store) GetPlannerByLogin(ctx context.Context, identifier string) (*models.Planner, error) {
	var p models.Planner
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`
		SELECT `+plannerColumns+`
		FROM planners
		WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
		LIMIT 1
	`), identifier, identifier, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planner by login: %w", err)
	}
	return &p, nil
}

// DeletePlanner removes a planner together with all of its events, guests and attendances
func (s *Store) DeletePlanner(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM planners WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete planner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete planner: %w", err)
	}
	if n == 0 {
		return ErrPlannerNotFound
	}
	return nil
}

// PlannerStats counts a planner's records. Events dated before today are past.
func (s *Store) PlannerStats(ctx context.Context, plannerID int64, today string) (*models.PlannerStats, error) {
	var stats models.PlannerStats
	err := s.db.GetContext(ctx, &stats, s.db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM events WHERE planner_id = ?) AS total_events,
			(SELECT COUNT(*) FROM guests WHERE planner_id = ?) AS total_guests,
			(SELECT COUNT(*) FROM attendances WHERE planner_id = ?) AS total_attendances,
			(SELECT COUNT(*) FROM events WHERE planner_id = ? AND event_date < ?) AS past_events,
			(SELECT COUNT(*) FROM events WHERE planner_id = ? AND event_date >= ?) AS upcoming_events
	`), plannerID, plannerID, plannerID, plannerID, today, plannerID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to compute planner stats: %w", err)
	}
	return &stats, nil
}
