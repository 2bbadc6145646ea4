// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session provides server-side login sessions.

A session is an opaque random id (uuid) kept in the HttpOnly cookie
"planner_session". The id maps to a planner id in a Store:

  - MemoryStore: in-process map, used for development and tests
  - RedisStore: keys "session:<id>" holding the planner id, with a Redis TTL

Expiry slides: every successful Manager.Load restarts both the store TTL and
the cookie Max-Age. The default lifetime is 30 minutes of inactivity.

	sessions := session.NewManager(session.NewMemoryStore(), cfg.SessionTTL, cfg.CookieSecure)

	// on login
	sessions.Start(ctx, w, planner.ID)

	// on every authenticated request
	plannerID, err := sessions.Load(w, r)

	// on logout
	sessions.Destroy(w, r)
*/
package session
