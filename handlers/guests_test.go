// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/danielhkuo/event-planner/models"
	"github.com/danielhkuo/event-planner/testutil"
)

func TestCreateGuest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewGuestHandler(store)
	p1 := testutil.CreateTestPlanner(t, store, "p1")
	p2 := testutil.CreateTestPlanner(t, store, "p2")
	testutil.CreateTestGuest(t, store, p2.ID, "Existing", "taken@x.com")

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
		expectedErrors []string
	}{
		{
			name:           "valid guest",
			requestBody:    models.CreateGuestRequest{Name: "Ana", Email: "ana@x.com", Phone: "+12345678"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "everything missing",
			requestBody:    models.CreateGuestRequest{},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: []string{
				"Guest's name is required.",
				"Guest's email address is required.",
				"Guest's phone number is required.",
			},
		},
		{
			name:           "bad formats",
			requestBody:    models.CreateGuestRequest{Name: "Bo", Email: "bo-at-x", Phone: "12-34"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: []string{msgInvalidEmail, msgInvalidPhone},
		},
		{
			name:           "email without at sign",
			requestBody:    models.CreateGuestRequest{Name: "Di", Email: "not-an-email", Phone: "1234567890"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: []string{msgInvalidEmail},
		},
		{
			name:           "phone with letters",
			requestBody:    models.CreateGuestRequest{Name: "Ed", Email: "ed@x.com", Phone: "abc123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: []string{msgInvalidPhone},
		},
		{
			name:           "email used by another planner's guest",
			requestBody:    models.CreateGuestRequest{Name: "Cy", Email: "taken@x.com", Phone: "1234567"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: []string{msgGuestEmailTaken},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asPlanner(testutil.MakeRequest("POST", "/guests", tt.requestBody, nil), p1)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				var resp models.ValidationErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if !slices.Equal(resp.Errors, tt.expectedErrors) {
					t.Errorf("expected errors %v, got %v", tt.expectedErrors, resp.Errors)
				}
				return
			}

			var resp models.GuestResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Guest.ID == 0 || resp.Guest.PlannerID != p1.ID || resp.Guest.Email != "ana@x.com" {
				t.Errorf("unexpected guest %+v", resp.Guest)
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, asPlanner(testutil.MakeRequest("POST", "/guests", "[", nil), p1))
		testutil.AssertError(t, w, http.StatusBadRequest, msgInvalidJSON)
	})

	// Rejected requests must not leave rows behind
	stored, err := store.ListGuests(t.Context(), p1.ID)
	if err != nil {
		t.Fatalf("failed to list guests: %v", err)
	}
	if len(stored) != 1 || stored[0].Email != "ana@x.com" {
		t.Errorf("expected only the valid guest stored, got %+v", stored)
	}
}

func TestListGuests_Scoped(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewGuestHandler(store)
	p1 := testutil.CreateTestPlanner(t, store, "p1")
	p2 := testutil.CreateTestPlanner(t, store, "p2")
	testutil.CreateTestGuest(t, store, p1.ID, "Zed", "zed@x.com")
	testutil.CreateTestGuest(t, store, p1.ID, "Ana", "ana@x.com")
	testutil.CreateTestGuest(t, store, p2.ID, "Other", "other@x.com")

	w := httptest.NewRecorder()
	handler.List(w, asPlanner(httptest.NewRequest("GET", "/guests", nil), p1))

	testutil.AssertStatus(t, w, http.StatusOK)
	var guests []models.Guest
	testutil.AssertJSON(t, w, &guests)
	if len(guests) != 2 || guests[0].Name != "Ana" || guests[1].Name != "Zed" {
		t.Errorf("expected [Ana Zed], got %+v", guests)
	}
}

func TestGetGuest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewGuestHandler(store)
	p1 := testutil.CreateTestPlanner(t, store, "p1")
	p2 := testutil.CreateTestPlanner(t, store, "p2")
	guest := testutil.CreateTestGuest(t, store, p1.ID, "Ana", "ana@x.com")
	id := fmt.Sprint(guest.ID)

	get := func(p *models.Planner, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/guests/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Get(w, asPlanner(req, p))
		return w
	}

	w := get(p1, id)
	testutil.AssertStatus(t, w, http.StatusOK)
	var got models.Guest
	testutil.AssertJSON(t, w, &got)
	if got.Name != "Ana" || got.Phone != "+12345678" {
		t.Errorf("unexpected guest %+v", got)
	}

	testutil.AssertError(t, get(p2, id), http.StatusNotFound, msgGuestNotFound)
	testutil.AssertError(t, get(p1, "x"), http.StatusNotFound, msgGuestNotFound)
}

func TestUpdateGuest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewGuestHandler(store)
	p1 := testutil.CreateTestPlanner(t, store, "p1")
	p2 := testutil.CreateTestPlanner(t, store, "p2")
	ana := testutil.CreateTestGuest(t, store, p1.ID, "Ana", "ana@x.com")
	testutil.CreateTestGuest(t, store, p1.ID, "Bo", "bo@x.com")
	id := fmt.Sprint(ana.ID)

	patch := func(p *models.Planner, id string, body any) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PATCH", "/guests/"+id, body, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Update(w, asPlanner(req, p))
		return w
	}
	expectErrors := func(t *testing.T, w *httptest.ResponseRecorder, want ...string) {
		t.Helper()
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
		var resp models.ValidationErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if !slices.Equal(resp.Errors, want) {
			t.Errorf("expected errors %v, got %v", want, resp.Errors)
		}
	}

	t.Run("partial update", func(t *testing.T) {
		w := patch(p1, id, map[string]any{"phone": "+1987654321"})
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.GuestResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Guest.Phone != "+1987654321" || resp.Guest.Name != "Ana" || resp.Guest.Email != "ana@x.com" {
			t.Errorf("unexpected guest %+v", resp.Guest)
		}
	})

	t.Run("keeping own email", func(t *testing.T) {
		testutil.AssertStatus(t, patch(p1, id, map[string]any{"email": "ana@x.com"}), http.StatusOK)
	})

	t.Run("validation", func(t *testing.T) {
		expectErrors(t, patch(p1, id, map[string]any{"name": " ", "email": "nope"}),
			"Guest's name cannot be blank.", msgInvalidEmail)
		expectErrors(t, patch(p1, id, map[string]any{"phone": "abc"}), msgInvalidPhone)
	})

	t.Run("email collision", func(t *testing.T) {
		expectErrors(t, patch(p1, id, map[string]any{"email": "bo@x.com"}), msgGuestEmailTaken)
	})

	t.Run("not owned", func(t *testing.T) {
		testutil.AssertError(t, patch(p2, id, map[string]any{"name": "X"}), http.StatusNotFound, msgGuestNotFound)
	})
}

func TestDeleteGuest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewGuestHandler(store)
	p1 := testutil.CreateTestPlanner(t, store, "p1")
	p2 := testutil.CreateTestPlanner(t, store, "p2")
	guest := testutil.CreateTestGuest(t, store, p1.ID, "Ana", "ana@x.com")
	event := testutil.CreateTestEvent(t, store, p1.ID, "Launch", "2025-09-01")
	attendance := testutil.CreateTestAttendance(t, store, p1.ID, guest.ID, event.ID)
	id := fmt.Sprint(guest.ID)

	del := func(p *models.Planner) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/guests/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Delete(w, asPlanner(req, p))
		return w
	}

	testutil.AssertError(t, del(p2), http.StatusNotFound, msgGuestNotFound)
	testutil.AssertStatus(t, del(p1), http.StatusOK)

	if _, err := store.GetAttendance(t.Context(), p1.ID, attendance.ID); err == nil {
		t.Error("attendance should be deleted with its guest")
	}
	reloaded, err := store.GetEvent(t.Context(), p1.ID, event.ID)
	if err != nil {
		t.Fatalf("event should survive guest deletion: %v", err)
	}
	if reloaded.GuestCount != 0 {
		t.Errorf("expected guest_count 0, got %d", reloaded.GuestCount)
	}
}
