package session

import (
	"context"
	"time"
)

// Session mirrors the users_session row.
//
// Username doubles as the row's identity: there is at most one session per
// user, enforced by the store's primary key. RefreshToken is set once at
// creation and never changes; Token and ExpiryDate change on every refresh.
type Session struct {
	Username     string
	Token        string
	RefreshToken string

	// ExpiryDate is the instant after which Token is stale. It is nullable at
	// the storage level, but every row written by this package carries one;
	// a nil value surfaces as ErrInvariantViolation, never a crash.
	ExpiryDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store abstracts persistence for session state.
//
// Implementations must enforce username uniqueness on Insert so that the
// service's create-or-refresh path is race-safe: a losing concurrent insert
// observes ErrDuplicateSession instead of writing a second row.
type Store interface {
	// FindByUsername loads the session for a user.
	// Returns ErrSessionNotFound if absent.
	FindByUsername(ctx context.Context, username string) (Session, error)

	// FindByRefreshToken loads a session by exact refresh token match.
	// Returns ErrSessionNotFound if absent.
	FindByRefreshToken(ctx context.Context, refreshToken string) (Session, error)

	// Insert creates a new session row. Returns ErrDuplicateSession when a
	// row for the username already exists, and ErrStorage when the insert
	// affects zero rows.
	Insert(ctx context.Context, s Session) error

	// UpdateTokenAndExpiry updates only token, expiry_date and updated_at for
	// the row matched by username. Returns ErrStorage when zero rows match.
	UpdateTokenAndExpiry(ctx context.Context, s Session) error
}
