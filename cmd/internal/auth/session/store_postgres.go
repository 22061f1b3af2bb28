package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL (public.users_session).
//
// The username primary key is the storage-level guarantee behind the
// at-most-one-session invariant: a concurrent duplicate insert surfaces as
// ErrDuplicateSession instead of a second row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
// The pool is owned by the caller and is not closed here.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindByUsername loads the session row for a user.
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (Session, error) {
	return s.findOne(ctx, `
		SELECT username, token, refresh_token, expiry_date, created_at, updated_at
		  FROM users_session
		 WHERE username = $1
	`, username)
}

// FindByRefreshToken loads a session row by exact refresh token.
func (s *PostgresStore) FindByRefreshToken(ctx context.Context, refreshToken string) (Session, error) {
	return s.findOne(ctx, `
		SELECT username, token, refresh_token, expiry_date, created_at, updated_at
		  FROM users_session
		 WHERE refresh_token = $1
	`, refreshToken)
}

// Insert creates a new session row.
func (s *PostgresStore) Insert(ctx context.Context, sess Session) error {
	const op = "session.Insert"

	if err := ctx.Err(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx, `
		INSERT INTO users_session (username, token, refresh_token, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sess.Username, sess.Token, sess.RefreshToken, sess.ExpiryDate, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicateSession)
		}
		return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("%s: %w: insert affected %d rows", op, ErrStorage, ct.RowsAffected())
	}
	return nil
}

// UpdateTokenAndExpiry updates token, expiry_date, and updated_at for the row
// matched by username. The refresh token is deliberately left untouched.
func (s *PostgresStore) UpdateTokenAndExpiry(ctx context.Context, sess Session) error {
	const op = "session.UpdateTokenAndExpiry"

	if err := ctx.Err(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx, `
		UPDATE users_session
		   SET token = $2,
		       expiry_date = $3,
		       updated_at = $4
		 WHERE username = $1
	`, sess.Username, sess.Token, sess.ExpiryDate, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: no row for username", op, ErrStorage)
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, query, arg string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	var sess Session
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&sess.Username,
		&sess.Token,
		&sess.RefreshToken,
		&sess.ExpiryDate,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return sess, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}
