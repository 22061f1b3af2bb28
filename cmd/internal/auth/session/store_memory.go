package session

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for dev mode and tests.
//
// Uniqueness on Insert is enforced under the mutex, giving the same
// ErrDuplicateSession contract as the Postgres primary key.
type MemoryStore struct {
	mu        sync.Mutex
	byUser    map[string]Session
	byRefresh map[string]string // refresh_token -> username
}

// NewMemoryStore constructs an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser:    make(map[string]Session),
		byRefresh: make(map[string]string),
	}
}

// FindByUsername loads the session for a user.
func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byUser[username]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// FindByRefreshToken loads a session by exact refresh token.
func (s *MemoryStore) FindByRefreshToken(ctx context.Context, refreshToken string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.byRefresh[refreshToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s.byUser[username], nil
}

// Insert creates a new session row, enforcing one row per username.
func (s *MemoryStore) Insert(ctx context.Context, sess Session) error {
	const op = "session.Insert"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[sess.Username]; ok {
		return fmt.Errorf("%s: %w", op, ErrDuplicateSession)
	}

	s.byUser[sess.Username] = sess
	s.byRefresh[sess.RefreshToken] = sess.Username
	return nil
}

// UpdateTokenAndExpiry replaces token, expiry_date, and updated_at for the
// row matched by username; the refresh token is left untouched.
func (s *MemoryStore) UpdateTokenAndExpiry(ctx context.Context, sess Session) error {
	const op = "session.UpdateTokenAndExpiry"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byUser[sess.Username]
	if !ok {
		return fmt.Errorf("%s: %w: no row for username", op, ErrStorage)
	}

	cur.Token = sess.Token
	cur.ExpiryDate = sess.ExpiryDate
	cur.UpdatedAt = sess.UpdatedAt
	s.byUser[sess.Username] = cur
	return nil
}
