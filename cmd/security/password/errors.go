package password

import "errors"

// ErrInvalidHash is returned when a stored hash is malformed or uses
// unsupported or out-of-bounds parameters.
var ErrInvalidHash = errors.New("invalid password hash")
