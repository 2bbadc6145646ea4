// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session identifier generation.

# Passwords

Passwords are write-only. HashPassword turns a plaintext password into a
bcrypt PasswordHash, and the only thing a PasswordHash can do afterwards is
check a candidate:

	hash, err := auth.HashPassword("hunter22")
	ok := hash.Matches("hunter22") // true

PasswordHash prints as "[redacted]" so it cannot leak through logging.
bcrypt only looks at the first 72 bytes, so longer passwords are rejected
with ErrPasswordTooLong instead of being silently truncated.

# Session IDs

	id := auth.NewSessionID()

Session IDs are random UUIDs. They carry no data; the session package maps
them to a planner ID server-side.
*/
package auth
