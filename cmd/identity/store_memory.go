package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for dev mode and tests.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]User
}

// NewMemoryStore constructs an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

// AddUser inserts a credential row, enforcing username uniqueness.
func (s *MemoryStore) AddUser(ctx context.Context, u User) error {
	const op = "identity.AddUser"

	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.PasswordHash) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}

	now := u.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	s.users[u.Username] = u
	return nil
}

// FindUser loads a credential row by exact username.
func (s *MemoryStore) FindUser(ctx context.Context, username string) (User, error) {
	const op = "identity.FindUser"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return u, nil
}
