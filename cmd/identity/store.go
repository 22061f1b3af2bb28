package identity

import (
	"context"
	"time"
)

// User is a stored credential record.
//
// Username is the immutable unique identifier. PasswordHash is always the
// encoded output of the password hasher, never a raw password.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	Name         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the credential persistence boundary.
type Store interface {
	// AddUser inserts a new credential row. The password hash must already be
	// applied by the caller. Returns ErrDuplicate if the username exists.
	AddUser(ctx context.Context, u User) error

	// FindUser performs an exact-match lookup by username.
	// Returns ErrNotFound if no row matches.
	FindUser(ctx context.Context, username string) (User, error)
}
