package gateway

import "errors"

// Sentinel errors mapped from backend HTTP status codes. Callers use
// errors.Is for reliable detection instead of parsing status codes.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrConflict is the backend's "already voted today" rejection: votes
	// are unique per user per calendar day, so a duplicate submission is a
	// terminal state until the next server-side reset.
	ErrConflict = errors.New("conflict")

	ErrRateLimited = errors.New("rate limited")
)

// IsAuthError reports whether err is an authentication/authorization failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
