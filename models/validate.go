// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrRequired        = errors.New("field is required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPhone    = errors.New("invalid phone number format")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime     = errors.New("invalid time format, use HH:MM (24hr)")
	ErrInvalidPlusOnes = errors.New("plus_ones must be a non-negative integer")
)

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// ValidateEmail reports whether s looks like local@domain.tld
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePhone reports whether s is an optional "+" followed by 7-15 digits
func ValidatePhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ParseEventDate normalizes a YYYY-MM-DD date string
func ParseEventDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(DateLayout), nil
}

// ParseEventTime normalizes a 24 hour HH:MM time string
func ParseEventTime(s string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.Format(TimeLayout), nil
}

// MaxPlusOnes is the largest value the INTEGER column holds
const MaxPlusOnes = math.MaxInt32

// ParsePlusOnes accepts a JSON number or numeric string up to MaxPlusOnes.
// ok is false when the field was absent or null.
func ParsePlusOnes(raw json.RawMessage) (n int, ok bool, err error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false, nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, true, ErrInvalidPlusOnes
	}
	n, err = strconv.Atoi(strings.TrimSpace(num.String()))
	if err != nil || n < 0 || n > MaxPlusOnes {
		return 0, true, ErrInvalidPlusOnes
	}
	return n, true, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", field, ErrRequired)
	}
	return nil
}

// Validate checks the planner's required fields and email format
func (p *Planner) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"username", p.Username},
		{"email", p.Email},
		{"password", string(p.PasswordHash)},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if !ValidateEmail(p.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Validate checks required fields and normalizes Date and Time in place
func (e *Event) Validate() error {
	if err := required("name", e.Name); err != nil {
		return err
	}
	if err := required("description", e.Description); err != nil {
		return err
	}
	if err := required("date", e.Date); err != nil {
		return err
	}

	date, err := ParseEventDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	if e.Time != nil {
		tm, err := ParseEventTime(*e.Time)
		if err != nil {
			return err
		}
		e.Time = &tm
	}
	return nil
}

func (g *Guest) Validate() error {
	if err := required("name", g.Name); err != nil {
		return err
	}
	if !ValidateEmail(g.Email) {
		return ErrInvalidEmail
	}
	if !ValidatePhone(g.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

func (a *Attendance) Validate() error {
	if a.GuestID <= 0 {
		return fmt.Errorf("guest_id: %w", ErrRequired)
	}
	if a.EventID <= 0 {
		return fmt.Errorf("event_id: %w", ErrRequired)
	}
	if err := required("rsvp_status", a.RSVPStatus); err != nil {
		return err
	}
	if a.PlusOnes < 0 || a.PlusOnes > MaxPlusOnes {
		return ErrInvalidPlusOnes
	}
	return nil
}
