// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"

	"github.com/danielhkuo/event-planner/auth"
)

// DefaultRSVPStatus is assigned to new attendances without an explicit status
const DefaultRSVPStatus = "Pending"

// Domain types

type Planner struct {
	ID           int64             `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	Username     string            `db:"username" json:"username"`
	Email        string            `db:"email" json:"email"`
	PasswordHash auth.PasswordHash `db:"password_hash" json:"-"` // Never expose in JSON
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// SetPassword replaces the stored digest with one derived from plain
func (p *Planner) SetPassword(plain string) error {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plain is this planner's password
func (p *Planner) CheckPassword(plain string) bool {
	return p.PasswordHash.Matches(plain)
}

type Event struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Venue       *string   `db:"venue" json:"venue"`
	Date        string    `db:"event_date" json:"date"`
	Time        *string   `db:"event_time" json:"time"`
	PlannerID   int64     `db:"planner_id" json:"planner_id"`
	GuestCount  int       `db:"guest_count" json:"guest_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Guest struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	PlannerID int64     `db:"planner_id" json:"planner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Attendance struct {
	ID         int64     `db:"id" json:"id"`
	RSVPStatus string    `db:"rsvp_status" json:"rsvp_status"`
	PlusOnes   int       `db:"plus_ones" json:"plus_ones"`
	GuestID    int64     `db:"guest_id" json:"guest_id"`
	EventID    int64     `db:"event_id" json:"event_id"`
	PlannerID  int64     `db:"planner_id" json:"planner_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	// Filled by joins on read
	GuestName  string `db:"guest_name" json:"guest_name"`
	GuestEmail string `db:"guest_email" json:"guest_email"`
	EventName  string `db:"event_name" json:"event_name"`
}

// EventGuest is a guest invited to one particular event
type EventGuest struct {
	Guest
	AttendanceID int64  `db:"attendance_id" json:"attendance_id"`
	RSVPStatus   string `db:"rsvp_status" json:"rsvp_status"`
	PlusOnes     int    `db:"plus_ones" json:"plus_ones"`
}

// PlannerStats are the aggregate counts shown on the profile page
type PlannerStats struct {
	TotalEvents      int `db:"total_events" json:"total_events"`
	TotalGuests      int `db:"total_guests" json:"total_guests"`
	TotalAttendances int `db:"total_attendances" json:"total_attendances"`
	PastEvents       int `db:"past_events" json:"past_events"`
	UpcomingEvents   int `db:"upcoming_events" json:"upcoming_events"`
}

type Profile struct {
	Planner
	PlannerStats
	MemberSince string `json:"member_since"`
}

// Request types

type RegisterRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Username may hold either a username or an email address
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

type CreateGuestRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateGuestRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// plus_ones is kept raw so a bad value is a validation error rather than a JSON error
type CreateAttendanceRequest struct {
	GuestID    int64           `json:"guest_id"`
	EventID    int64           `json:"event_id"`
	RSVPStatus *string         `json:"rsvp_status"`
	PlusOnes   json.RawMessage `json:"plus_ones"`
}

type UpdateAttendanceRequest struct {
	RSVPStatus *string         `json:"rsvp_status"`
	PlusOnes   json.RawMessage `json:"plus_ones"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type PlannerResponse struct {
	Message string   `json:"message"`
	Planner *Planner `json:"planner"`
}

type ProfileResponse struct {
	Message string   `json:"message"`
	Profile *Profile `json:"profile"`
}

type EventResponse struct {
	Message string `json:"message"`
	Event   *Event `json:"event"`
}

type GuestResponse struct {
	Message string `json:"message"`
	Guest   *Guest `json:"guest"`
}

type AttendanceResponse struct {
	Message    string      `json:"message"`
	Attendance *Attendance `json:"attendance"`
}

// Error responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}
