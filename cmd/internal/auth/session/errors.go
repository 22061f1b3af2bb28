package session

import "errors"

var (
	// ErrInvalidRefreshToken is returned when a refresh token does not match
	// any session.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrSessionNotFound is returned by stores when no session row matches.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession is returned by stores when an insert collides with
	// an existing row for the same username. The service treats it as "lost
	// the creation race" and retries as a refresh.
	ErrDuplicateSession = errors.New("session already exists")

	// ErrStorage is returned when a write unexpectedly affects zero rows or
	// the store fails for reasons other than the sentinels above.
	ErrStorage = errors.New("session storage failure")

	// ErrHashing is returned when password hashing or hash parsing fails.
	// This is a server-side fault, never a user error.
	ErrHashing = errors.New("password hashing failure")

	// ErrInvariantViolation is returned when a session is missing data it
	// must have by construction (an expiry date). It is recoverable: callers
	// get an error, the process never aborts.
	ErrInvariantViolation = errors.New("session invariant violation")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
