// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/event-planner/models"
)

const attendanceSelect = `
	SELECT a.id, a.rsvp_status, a.plus_ones, a.guest_id, a.event_id, a.planner_id,
		a.created_at, a.updated_at,
		g.name AS guest_name, g.email AS guest_email, e.name AS event_name
	FROM attendances a
	JOIN guests g ON g.id = a.guest_id
	JOIN events e ON e.id = a.event_id
`

const attendanceByID = attendanceSelect + " WHERE a.id = ? AND a.planner_id = ?"

// ListAttendances returns the planner's attendances, optionally for one event
func (s *Store) ListAttendances(ctx context.Context, plannerID int64, eventID *int64) ([]models.Attendance, error) {
	query := attendanceSelect + " WHERE a.planner_id = ?"
	args := []any{plannerID}
	if eventID != nil {
		query += " AND a.event_id = ?"
		args = append(args, *eventID)
	}
	query += " ORDER BY a.id"

	out := []models.Attendance{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return out, nil
}

func (s *Store) GetAttendance(ctx context.Context, plannerID, id int64) (*models.Attendance, error) {
	return getOwned[models.Attendance](ctx, s.db, attendanceByID, plannerID, id, ErrAttendanceNotFound)
}

// CreateAttendance invites a guest to an event. Both must belong to a.PlannerID
// and the guest may only be invited once per event.
func (s *Store) CreateAttendance(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	if a.RSVPStatus == "" {
		a.RSVPStatus = models.DefaultRSVPStatus
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var created *models.Attendance
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "SELECT 1 FROM guests WHERE id = ? AND planner_id = ?", a.GuestID, a.PlannerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrGuestNotFound
		}

		ok, err = exists(ctx, tx, "SELECT 1 FROM events WHERE id = ? AND planner_id = ?", a.EventID, a.PlannerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEventNotFound
		}

		dup, err := exists(ctx, tx,
			"SELECT 1 FROM attendances WHERE guest_id = ? AND event_id = ? AND planner_id = ?",
			a.GuestID, a.EventID, a.PlannerID)
		if err != nil {
			return err
		}
		if dup {
			return ErrAlreadyInvited
		}

		now := s.now()
		var id int64
		err = tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO attendances (rsvp_status, plus_ones, guest_id, event_id, planner_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`), a.RSVPStatus, a.PlusOnes, a.GuestID, a.EventID, a.PlannerID, now, now).Scan(&id)
		if err != nil {
			return translate(fmt.Errorf("failed to insert attendance: %w", err))
		}

		created, err = getOwned[models.Attendance](ctx, tx, attendanceByID, a.PlannerID, id, ErrAttendanceNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAttendance applies mutate to an owned attendance. Only the RSVP status
// and plus-ones are written back.
func (s *Store) UpdateAttendance(ctx context.Context, plannerID, id int64, mutate func(*models.Attendance) error) (*models.Attendance, error) {
	var updated *models.Attendance
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		a, err := getOwned[models.Attendance](ctx, tx, attendanceByID, plannerID, id, ErrAttendanceNotFound)
		if err != nil {
			return err
		}
		if err := mutate(a); err != nil {
			return err
		}
		if err := a.Validate(); err != nil {
			return err
		}

		a.UpdatedAt = s.now()
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE attendances SET rsvp_status = ?, plus_ones = ?, updated_at = ?
			WHERE id = ? AND planner_id = ?
		`), a.RSVPStatus, a.PlusOnes, a.UpdatedAt, id, plannerID)
		if err != nil {
			return translate(fmt.Errorf("failed to update attendance: %w", err))
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, plannerID, id int64) error {
	return s.deleteOwned(ctx, "attendances", plannerID, id, ErrAttendanceNotFound)
}
