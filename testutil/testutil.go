// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/event-planner/auth"
	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/models"
)

// TestPassword is the password of every planner created by CreateTestPlanner
const TestPassword = "password123"

func init() {
	// Full-cost bcrypt makes the suite crawl
	auth.Cost = bcrypt.MinCost
}

// SetupTestStore opens a fresh SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	store, err := db.Open(context.Background(), db.DialectSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// CreateTestPlanner registers a planner with TestPassword
func CreateTestPlanner(t *testing.T, store *db.Store, username string) *models.Planner {
	t.Helper()

	p := &models.Planner{
		Name:     "Planner " + username,
		Username: username,
		Email:    username + "@example.com",
	}
	if err := p.SetPassword(TestPassword); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := store.CreatePlanner(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test planner: %v", err)
	}
	return p
}

// CreateTestEvent creates an event owned by plannerID on the given date
func CreateTestEvent(t *testing.T, store *db.Store, plannerID int64, name, date string) *models.Event {
	t.Helper()

	e := &models.Event{
		Name:        name,
		Description: name + " description",
		Date:        date,
		PlannerID:   plannerID,
	}
	if err := store.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return e
}

// CreateTestGuest creates a guest owned by plannerID
func CreateTestGuest(t *testing.T, store *db.Store, plannerID int64, name, email string) *models.Guest {
	t.Helper()

	g := &models.Guest{
		Name:      name,
		Email:     email,
		Phone:     "+12345678",
		PlannerID: plannerID,
	}
	if err := store.CreateGuest(context.Background(), g); err != nil {
		t.Fatalf("Failed to create test guest: %v", err)
	}
	return g
}

// CreateTestAttendance invites a guest to an event with the default RSVP
func CreateTestAttendance(t *testing.T, store *db.Store, plannerID, guestID, eventID int64) *models.Attendance {
	t.Helper()

	a, err := store.CreateAttendance(context.Background(), &models.Attendance{
		GuestID:   guestID,
		EventID:   eventID,
		PlannerID: plannerID,
	})
	if err != nil {
		t.Fatalf("Failed to create test attendance: %v", err)
	}
	return a
}

// MakeRequest creates an HTTP test request. A string body is sent verbatim.
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status and the {"error": ...} message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
