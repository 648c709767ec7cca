package auth

import "errors"

// Sentinel errors for session operations
var (
	// ErrInvalidToken is returned for malformed, forged or expired tokens
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionNotFound is returned when a session token verifies but the
	// server-side record is gone (signed out elsewhere)
	ErrSessionNotFound = errors.New("session not found")
)
