// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// Cost is the bcrypt work factor used by HashPassword.
// Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// PasswordHash is a one-way bcrypt digest of a password.
// There is no way to get the plaintext back out; only Matches.
type PasswordHash string

// HashPassword derives a PasswordHash from a plaintext password
func HashPassword(plain string) (PasswordHash, error) {
	if len(plain) > 72 {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return PasswordHash(hashed), nil
}

// Matches reports whether plain hashes to h
func (h PasswordHash) Matches(plain string) bool {
	if h == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(plain)) == nil
}

// String keeps digests out of logs and fmt output.
func (h PasswordHash) String() string {
	return "[redacted]"
}

// NewSessionID returns a random opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
