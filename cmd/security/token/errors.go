package token

import "errors"

// ErrInvalidLength is returned when a non-positive token length is requested.
var ErrInvalidLength = errors.New("invalid token length")
