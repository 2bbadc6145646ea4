// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@x.com", true},
		{"first.last@sub.example.org", true},
		{"a+tag@b.co", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@x.com", false},
		{"two@@x.com", false},
		{"a@b@c.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+12345678", true},
		{"1234567", true},
		{"123456789012345", true},
		{"+123456789012345", true},
		{"123456", false},          // too short
		{"1234567890123456", false}, // too long
		{"abc123", false},
		{"++1234567", false},
		{"123-456-7890", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidatePhone(tt.phone); got != tt.want {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestParseEventDate(t *testing.T) {
	got, err := ParseEventDate(" 2025-09-01 ")
	if err != nil {
		t.Fatalf("ParseEventDate() error = %v", err)
	}
	if got != "2025-09-01" {
		t.Errorf("ParseEventDate() = %q, want 2025-09-01", got)
	}

	for _, bad := range []string{"09/01/2025", "2025-13-01", "2025-02-30", "tomorrow", ""} {
		if _, err := ParseEventDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseEventDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestParseEventTime(t *testing.T) {
	got, err := ParseEventTime("18:30")
	if err != nil {
		t.Fatalf("ParseEventTime() error = %v", err)
	}
	if got != "18:30" {
		t.Errorf("ParseEventTime() = %q, want 18:30", got)
	}

	for _, bad := range []string{"6pm", "25:00", "18:60", "18.30", ""} {
		if _, err := ParseEventTime(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseEventTime(%q) error = %v, want ErrInvalidTime", bad, err)
		}
	}
}

func TestParsePlusOnes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantOK  bool
		wantErr bool
	}{
		{"absent", "", 0, false, false},
		{"null", "null", 0, false, false},
		{"number", "3", 3, true, false},
		{"zero", "0", 0, true, false},
		{"numeric string", `"2"`, 2, true, false},
		{"negative", "-1", 0, true, true},
		{"fraction", "1.5", 0, true, true},
		{"word", `"two"`, 0, true, true},
		{"bool", "true", 0, true, true},
		{"int32 max", "2147483647", MaxPlusOnes, true, false},
		{"overflows column", "3000000000", 0, true, true},
		{"overflows column as string", `"3000000000"`, 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok, err := ParsePlusOnes(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlusOnes(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPlusOnes) {
				t.Errorf("expected ErrInvalidPlusOnes, got %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ParsePlusOnes(%s) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if err == nil && n != tt.want {
				t.Errorf("ParsePlusOnes(%s) = %d, want %d", tt.raw, n, tt.want)
			}
		})
	}
}

func TestEventValidate_Normalizes(t *testing.T) {
	tm := "09:05"
	e := Event{Name: "Launch", Description: "desc", Date: "2025-09-01", Time: &tm}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	missing := Event{Name: "Launch", Date: "2025-09-01"}
	if err := missing.Validate(); !errors.Is(err, ErrRequired) {
		t.Errorf("expected ErrRequired for missing description, got %v", err)
	}

	badTime := "noon"
	bad := Event{Name: "Launch", Description: "desc", Date: "2025-09-01", Time: &badTime}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
}

func TestGuestValidate(t *testing.T) {
	tests := []struct {
		name    string
		guest   Guest
		wantErr error
	}{
		{"valid", Guest{Name: "Ana", Email: "ana@x.com", Phone: "+12345678"}, nil},
		{"blank name", Guest{Name: " ", Email: "ana@x.com", Phone: "+12345678"}, ErrRequired},
		{"bad email", Guest{Name: "Ana", Email: "not-an-email", Phone: "+12345678"}, ErrInvalidEmail},
		{"bad phone", Guest{Name: "Ana", Email: "ana@x.com", Phone: "abc123"}, ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guest.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAttendanceValidate(t *testing.T) {
	a := Attendance{GuestID: 1, EventID: 2, RSVPStatus: DefaultRSVPStatus}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	a.PlusOnes = -2
	if err := a.Validate(); !errors.Is(err, ErrInvalidPlusOnes) {
		t.Errorf("expected ErrInvalidPlusOnes, got %v", err)
	}

	noGuest := Attendance{EventID: 2, RSVPStatus: "Pending"}
	if err := noGuest.Validate(); !errors.Is(err, ErrRequired) {
		t.Errorf("expected ErrRequired, got %v", err)
	}
}

func TestPlannerJSON_HidesPasswordHash(t *testing.T) {
	p := Planner{ID: 1, Name: "P", Username: "p1", Email: "p@x.com"}
	if err := p.SetPassword("pw-123456"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	json.Unmarshal(data, &fields)
	if _, ok := fields["password_hash"]; ok {
		t.Error("password_hash exposed in JSON")
	}
	if _, ok := fields["PasswordHash"]; ok {
		t.Error("PasswordHash exposed in JSON")
	}

	if !p.CheckPassword("pw-123456") {
		t.Error("CheckPassword() rejected the right password")
	}
	if p.CheckPassword("pw-654321") {
		t.Error("CheckPassword() accepted the wrong password")
	}
}
