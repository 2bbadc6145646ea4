// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"net/http"
	"time"

	"github.com/danielhkuo/event-planner/auth"
)

const (
	CookieName = "planner_session"
	DefaultTTL = 30 * time.Minute
)

// Manager ties the session store to the HTTP cookie
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

// NewManager returns a Manager. A ttl <= 0 uses DefaultTTL.
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, secure: secure}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start binds a new session to plannerID and sets the cookie
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, plannerID int64) error {
	id := auth.NewSessionID()
	if err := m.store.Create(ctx, id, plannerID, m.ttl); err != nil {
		return err
	}
	m.setCookie(w, id, m.ttl)
	return nil
}

// Load returns the planner bound to the request's session and slides the
// expiry forward. Returns ErrNoSession when there is none.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (int64, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, ErrNoSession
	}

	plannerID, err := m.store.Lookup(r.Context(), c.Value, m.ttl)
	if err != nil {
		return 0, err
	}

	m.setCookie(w, c.Value, m.ttl)
	return plannerID, nil
}

// Destroy removes the request's session. Returns ErrNoSession if the request
// did not carry a live one.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ErrNoSession
	}

	// An expired session still gets its cookie cleared
	defer m.setCookie(w, "", -1)

	if _, err := m.store.Lookup(r.Context(), c.Value, m.ttl); err != nil {
		return err
	}
	return m.store.Delete(r.Context(), c.Value)
}

// Clear drops the session id without checking it
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	m.setCookie(w, "", -1)
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return m.store.Delete(r.Context(), c.Value)
	}
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, c)
}
