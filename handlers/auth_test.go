// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/event-planner/auth"
	"github.com/danielhkuo/event-planner/models"
	"github.com/danielhkuo/event-planner/session"
	"github.com/danielhkuo/event-planner/testutil"
)

func newTestSessions() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), time.Minute, false)
}

func findSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	testutil.CreateTestPlanner(t, store, "taken")

	valid := models.RegisterRequest{
		Name:            "Planner One",
		Username:        "p1",
		Email:           "p1@x.com",
		Password:        "pw-123456",
		ConfirmPassword: "pw-123456",
	}
	with := func(mutate func(r *models.RegisterRequest)) models.RegisterRequest {
		r := valid
		mutate(&r)
		return r
	}

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
		expectedError  string
	}{
		{"valid registration", valid, http.StatusCreated, ""},
		{"missing name", with(func(r *models.RegisterRequest) { r.Name = " " }), http.StatusBadRequest, "All fields are required."},
		{"missing confirm", with(func(r *models.RegisterRequest) { r.ConfirmPassword = "" }), http.StatusBadRequest, "All fields are required."},
		{"password mismatch", with(func(r *models.RegisterRequest) { r.ConfirmPassword = "other" }), http.StatusBadRequest, "Passwords do not match."},
		{"invalid email", with(func(r *models.RegisterRequest) { r.Email = "not-an-email" }), http.StatusBadRequest, "Invalid email format."},
		{"username taken", with(func(r *models.RegisterRequest) { r.Username = "taken" }), http.StatusBadRequest, "This username already exists."},
		{"email taken", with(func(r *models.RegisterRequest) { r.Username = "fresh"; r.Email = "taken@example.com" }), http.StatusBadRequest, "This email is already registered."},
		{"invalid JSON", "invalid json", http.StatusBadRequest, "Invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/register", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			if tt.expectedStatus != http.StatusCreated {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				if findSessionCookie(w) != nil {
					t.Error("failed registration must not start a session")
				}
				return
			}

			testutil.AssertStatus(t, w, http.StatusCreated)
			var resp models.PlannerResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Planner == nil || resp.Planner.ID == 0 || resp.Planner.Username != "p1" {
				t.Errorf("unexpected planner in response: %+v", resp.Planner)
			}
			if findSessionCookie(w) == nil {
				t.Error("registration should start a session")
			}
		})
	}
}

func TestRegister_DoesNotLeakPasswordHash(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())

	req := testutil.MakeRequest("POST", "/register", models.RegisterRequest{
		Name: "P", Username: "p1", Email: "p1@x.com", Password: "pw-123456", ConfirmPassword: "pw-123456",
	}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)

	var raw struct {
		Planner map[string]any `json:"planner"`
	}
	testutil.AssertJSON(t, w, &raw)
	if _, ok := raw.Planner["password_hash"]; ok {
		t.Error("password_hash must never be serialized")
	}
}

func TestLogin(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	testutil.CreateTestPlanner(t, store, "p1")

	tests := []struct {
		name           string
		requestBody    models.LoginRequest
		expectedStatus int
		expectedError  string
	}{
		{"by username", models.LoginRequest{Username: "p1", Password: testutil.TestPassword}, http.StatusOK, ""},
		{"by email", models.LoginRequest{Username: "p1@example.com", Password: testutil.TestPassword}, http.StatusOK, ""},
		{"wrong password", models.LoginRequest{Username: "p1", Password: "nope"}, http.StatusUnauthorized, "Invalid username/email or password."},
		{"unknown user", models.LoginRequest{Username: "ghost", Password: testutil.TestPassword}, http.StatusUnauthorized, "Invalid username/email or password."},
		{"missing password", models.LoginRequest{Username: "p1"}, http.StatusBadRequest, "Username/email and password are required."},
		{"missing username", models.LoginRequest{Password: "x"}, http.StatusBadRequest, "Username/email and password are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/login", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				return
			}

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.PlannerResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != "Login successful." || resp.Planner.Username != "p1" {
				t.Errorf("unexpected response %+v", resp)
			}
			if findSessionCookie(w) == nil {
				t.Error("login should set the session cookie")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	planner := testutil.CreateTestPlanner(t, store, "p1")
	req := httptest.NewRequest("POST", "/login", nil)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{"username", "p1", testutil.TestPassword, nil},
		{"email", "p1@example.com", testutil.TestPassword, nil},
		{"wrong password", "p1", "nope", auth.ErrInvalidCredentials},
		{"unknown account", "ghost", testutil.TestPassword, auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler.authenticate(req, tt.identifier, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != planner.ID {
				t.Errorf("expected planner %d, got %d", planner.ID, got.ID)
			}
		})
	}
}

func TestNewAuthHandler_ClockIsUTC(t *testing.T) {
	handler := NewAuthHandler(nil, newTestSessions())
	if loc := handler.now().Location(); loc != time.UTC {
		t.Errorf("expected UTC clock, got %v", loc)
	}
}

func TestLogout(t *testing.T) {
	store := testutil.SetupTestStore(t)
	sessions := newTestSessions()
	handler := NewAuthHandler(store, sessions)
	planner := testutil.CreateTestPlanner(t, store, "p1")

	w := httptest.NewRecorder()
	sessions.Start(context.Background(), w, planner.ID)
	cookie := findSessionCookie(w)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	handler.Logout(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Second logout with the same cookie has nothing to end
	req = httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	handler.Logout(w, req)
	testutil.AssertError(t, w, http.StatusBadRequest, "No active session.")

	w = httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest("POST", "/logout", nil))
	testutil.AssertError(t, w, http.StatusBadRequest, "No active session.")
}

func TestCheckSession(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	planner := testutil.CreateTestPlanner(t, store, "p1")

	w := httptest.NewRecorder()
	handler.CheckSession(w, asPlanner(httptest.NewRequest("GET", "/check_session", nil), planner))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.PlannerResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Planner.ID != planner.ID {
		t.Errorf("expected planner %d, got %d", planner.ID, resp.Planner.ID)
	}
}

func TestProfile(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	planner := testutil.CreateTestPlanner(t, store, "p1")

	handler.now = func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }

	past := testutil.CreateTestEvent(t, store, planner.ID, "Past", "2025-01-10")
	testutil.CreateTestEvent(t, store, planner.ID, "Soon", "2025-06-15")
	testutil.CreateTestEvent(t, store, planner.ID, "Later", "2026-01-01")
	guest := testutil.CreateTestGuest(t, store, planner.ID, "Ana", "ana@x.com")
	testutil.CreateTestAttendance(t, store, planner.ID, guest.ID, past.ID)

	w := httptest.NewRecorder()
	handler.Profile(w, asPlanner(httptest.NewRequest("GET", "/profile", nil), planner))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ProfileResponse
	testutil.AssertJSON(t, w, &resp)

	p := resp.Profile
	if p == nil {
		t.Fatal("missing profile")
	}
	if p.Username != "p1" {
		t.Errorf("expected username p1, got %s", p.Username)
	}
	if p.TotalEvents != 3 || p.PastEvents != 1 || p.UpcomingEvents != 2 {
		t.Errorf("unexpected event counts: %+v", p.PlannerStats)
	}
	if p.TotalGuests != 1 || p.TotalAttendances != 1 {
		t.Errorf("unexpected guest/attendance counts: %+v", p.PlannerStats)
	}
	if p.MemberSince == "" {
		t.Error("expected member_since")
	}
}

func TestDeleteAccount(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewAuthHandler(store, newTestSessions())
	planner := testutil.CreateTestPlanner(t, store, "p1")
	event := testutil.CreateTestEvent(t, store, planner.ID, "Launch", "2025-09-01")

	w := httptest.NewRecorder()
	handler.DeleteAccount(w, asPlanner(httptest.NewRequest("DELETE", "/profile", nil), planner))
	testutil.AssertStatus(t, w, http.StatusOK)

	if _, err := store.GetPlanner(context.Background(), planner.ID); err == nil {
		t.Error("planner should be gone")
	}
	if _, err := store.GetEvent(context.Background(), planner.ID, event.ID); err == nil {
		t.Error("planner's events should cascade")
	}

	// Deleting again reports the planner as missing
	w = httptest.NewRecorder()
	handler.DeleteAccount(w, asPlanner(httptest.NewRequest("DELETE", "/profile", nil), planner))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
