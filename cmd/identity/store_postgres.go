package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over PostgreSQL (public.users).
//
// The pgx pool is owned by the caller; this store must NOT close it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed credential store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// AddUser inserts a credential row.
// A unique violation on username maps to ErrDuplicate.
func (s *PostgresStore) AddUser(ctx context.Context, u User) error {
	const op = "identity.AddUser"

	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.PasswordHash) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	now := u.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	ct, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, email, password_hash, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		u.Username, u.Email, u.PasswordHash, u.Name, now,
	)
	if err != nil {
		if pgIsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("%s: insert affected %d rows", op, ct.RowsAffected())
	}
	return nil
}

// FindUser loads a credential row by exact username.
func (s *PostgresStore) FindUser(ctx context.Context, username string) (User, error) {
	const op = "identity.FindUser"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT username, email, password_hash, name, created_at, updated_at
		   FROM users
		  WHERE username = $1`,
		username,
	).Scan(&u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func pgIsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}
