// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when a session id is unknown or expired
var ErrNoSession = errors.New("no active session")

// Store persists session id -> planner id bindings with a per-session TTL
type Store interface {
	Create(ctx context.Context, id string, plannerID int64, ttl time.Duration) error
	// Lookup returns the bound planner and restarts the TTL
	Lookup(ctx context.Context, id string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	plannerID int64
	expiresAt time.Time
}

// sweepInterval bounds how often Create scans for expired sessions
const sweepInterval = time.Minute

// MemoryStore keeps sessions in process. Sessions are lost on restart.
// Expired sessions are dropped on lookup and by a periodic sweep in Create.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, id string, plannerID int64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	m.sessions[id] = memoryEntry{plannerID: plannerID, expiresAt: now.Add(ttl)}
	return nil
}

// sweep removes every expired session. Callers hold m.mu.
func (m *MemoryStore) sweep(now time.Time) {
	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.lastSweep = now
}

func (m *MemoryStore) Lookup(_ context.Context, id string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return 0, ErrNoSession
	}

	now := m.now()
	if !now.Before(entry.expiresAt) {
		delete(m.sessions, id)
		return 0, ErrNoSession
	}

	entry.expiresAt = now.Add(ttl)
	m.sessions[id] = entry
	return entry.plannerID, nil
}

// Delete is a no-op for unknown ids
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are held. Expired sessions not yet swept count.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
