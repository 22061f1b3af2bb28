package identity

import "errors"

var (
	// ErrDuplicate is returned when a username already exists.
	ErrDuplicate = errors.New("credential already exists")

	// ErrNotFound is returned when no credential matches the lookup.
	ErrNotFound = errors.New("credential not found")

	// ErrInvalidInput is returned for structurally invalid records
	// (empty username, missing password hash).
	ErrInvalidInput = errors.New("invalid credential input")
)

// IsDuplicate reports whether err represents ErrDuplicate.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
