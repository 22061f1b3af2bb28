package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests are enabled when WAYPOINT_DATABASE_URL is set and assume
// the migrations in migrations/ have been applied.

func TestPostgresSessionStore_InsertAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustSessionTestPool(ctx, t)
	defer pool.Close()

	store := NewPostgresStore(pool)
	username := mustCreateSessionTestUser(ctx, t, pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	expiry := now.Add(30 * time.Minute)
	sess := Session{
		Username:     username,
		Token:        "tok-" + username,
		RefreshToken: "ref-" + username,
		ExpiryDate:   &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.Insert(ctx, sess); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.FindByUsername(ctx, username)
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.Token != sess.Token || got.RefreshToken != sess.RefreshToken {
		t.Fatalf("FindByUsername mismatch: got %+v", got)
	}
	if got.ExpiryDate == nil || !got.ExpiryDate.Equal(expiry) {
		t.Fatalf("expiry = %v; want %v", got.ExpiryDate, expiry)
	}

	byRefresh, err := store.FindByRefreshToken(ctx, sess.RefreshToken)
	if err != nil {
		t.Fatalf("FindByRefreshToken: %v", err)
	}
	if byRefresh.Username != username {
		t.Fatalf("FindByRefreshToken username = %q; want %q", byRefresh.Username, username)
	}
}

func TestPostgresSessionStore_DuplicateInsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustSessionTestPool(ctx, t)
	defer pool.Close()

	store := NewPostgresStore(pool)
	username := mustCreateSessionTestUser(ctx, t, pool)

	now := time.Now().UTC()
	expiry := now.Add(time.Hour)
	sess := Session{
		Username:     username,
		Token:        "tok-" + username,
		RefreshToken: "ref-" + username,
		ExpiryDate:   &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Insert(ctx, sess); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	dup := sess
	dup.Token = "tok2-" + username
	dup.RefreshToken = "ref2-" + username
	if err := store.Insert(ctx, dup); !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("duplicate Insert err = %v; want ErrDuplicateSession", err)
	}
}

func TestPostgresSessionStore_UpdateTokenAndExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustSessionTestPool(ctx, t)
	defer pool.Close()

	store := NewPostgresStore(pool)
	username := mustCreateSessionTestUser(ctx, t, pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	expiry := now.Add(30 * time.Minute)
	sess := Session{
		Username:     username,
		Token:        "tok-" + username,
		RefreshToken: "ref-" + username,
		ExpiryDate:   &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Insert(ctx, sess); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	later := now.Add(10 * time.Minute)
	newExpiry := later.Add(30 * time.Minute)
	sess.Token = "tok-rotated-" + username
	sess.ExpiryDate = &newExpiry
	sess.UpdatedAt = later
	if err := store.UpdateTokenAndExpiry(ctx, sess); err != nil {
		t.Fatalf("UpdateTokenAndExpiry: %v", err)
	}

	got, err := store.FindByUsername(ctx, username)
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.Token != sess.Token {
		t.Fatalf("token = %q; want %q", got.Token, sess.Token)
	}
	if got.RefreshToken != "ref-"+username {
		t.Fatalf("refresh token changed to %q", got.RefreshToken)
	}
	if got.ExpiryDate == nil || !got.ExpiryDate.Equal(newExpiry) {
		t.Fatalf("expiry = %v; want %v", got.ExpiryDate, newExpiry)
	}
}

func TestPostgresSessionStore_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustSessionTestPool(ctx, t)
	defer pool.Close()

	store := NewPostgresStore(pool)

	if _, err := store.FindByUsername(ctx, "no-such-user"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("FindByUsername err = %v; want ErrSessionNotFound", err)
	}
	if _, err := store.FindByRefreshToken(ctx, "no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("FindByRefreshToken err = %v; want ErrSessionNotFound", err)
	}

	now := time.Now().UTC()
	expiry := now.Add(time.Hour)
	err := store.UpdateTokenAndExpiry(ctx, Session{
		Username:   "no-such-user",
		Token:      "tok",
		ExpiryDate: &expiry,
		UpdatedAt:  now,
	})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("UpdateTokenAndExpiry(missing) err = %v; want ErrStorage", err)
	}
}

func mustSessionTestPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := strings.TrimSpace(os.Getenv("WAYPOINT_DATABASE_URL"))
	if dbURL == "" {
		t.Skip("WAYPOINT_DATABASE_URL is not set; skipping Postgres integration test")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("parse WAYPOINT_DATABASE_URL: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		t.Skipf("Postgres unreachable (WAYPOINT_DATABASE_URL set): %v", err)
	}

	return pool
}

// mustCreateSessionTestUser inserts a throwaway user row so the session
// foreign key is satisfied, and registers cleanup of both tables.
func mustCreateSessionTestUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	username := "sesstest_" + hex.EncodeToString(raw[:])

	now := time.Now().UTC()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, username, username+"@example.com", "$argon2id$v=19$m=8,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", username, now)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users_session WHERE username = $1`, username)
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE username = $1`, username)
	})

	return username
}
