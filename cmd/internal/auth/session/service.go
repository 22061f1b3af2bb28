package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"waypoint/cmd/identity"
	"waypoint/cmd/security/password"
	"waypoint/cmd/security/token"

	"golang.org/x/sync/semaphore"
)

// Service implements the high-level credential and session operations.
//
// It composes the credential store, session store, password hasher, and token
// generator; it is the only consumer of those components. The service holds
// no mutable request state and is safe to share across concurrent requests.
type Service struct {
	cfg      Config
	log      *slog.Logger
	users    identity.Store
	sessions Store
	hasher   password.Config

	// hashSem bounds concurrent Argon2id work so CPU-bound hashing cannot
	// starve I/O-bound request handling.
	hashSem *semaphore.Weighted

	// dummyHash is verified against when a login targets an unknown user, so
	// "no such user" and "wrong password" take comparable time.
	dummyHash string
}

// SignUpInput is a registration request carrying the plaintext password.
// The plaintext never reaches a store or a log line.
type SignUpInput struct {
	Username string
	Email    string
	Name     string
	Password string
}

// NewService constructs a Service from configuration and injected
// dependencies. There is no hidden global state: logger, stores, and hasher
// are all owned by the caller.
func NewService(cfg Config, log *slog.Logger, users identity.Store, sessions Store, hasher password.Config) *Service {
	if log == nil {
		log = slog.Default()
	}

	workers := cfg.HashWorkers
	if workers < 1 {
		workers = 1
	}

	s := &Service{
		cfg:      cfg,
		log:      log,
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		hashSem:  semaphore.NewWeighted(int64(workers)),
	}

	if h, err := hasher.Hash("dummy-password-for-timing-only"); err == nil {
		s.dummyHash = h
	}

	return s
}

// SignUp hashes the plaintext password and inserts the credential record.
//
// Returns true on success. identity.ErrDuplicate and storage failures
// propagate as distinct kinds so the caller can choose whether to reveal
// "username taken".
func (s *Service) SignUp(ctx context.Context, now time.Time, in SignUpInput) (bool, error) {
	hash, err := s.hashPassword(ctx, in.Password)
	if err != nil {
		return false, err
	}

	u := identity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.AddUser(ctx, u); err != nil {
		return false, err
	}

	return true, nil
}

// Login verifies a plaintext password against the stored credential.
//
// An unknown username returns identity.ErrNotFound; callers must present it
// identically to a password mismatch to avoid username enumeration. A dummy
// verification runs in that case so both paths take comparable time.
// A malformed stored hash is a server-side fault: it is logged here and
// surfaced as ErrHashing, never as a user error.
func (s *Service) Login(ctx context.Context, username, plaintext string) (bool, error) {
	u, err := s.users.FindUser(ctx, username)
	if err != nil {
		if identity.IsNotFound(err) && s.dummyHash != "" {
			_, _ = s.verifyPassword(ctx, s.dummyHash, plaintext)
		}
		return false, err
	}

	ok, err := s.verifyPassword(ctx, u.PasswordHash, plaintext)
	if err != nil {
		s.log.Error("session.login.verify.fail", "username", username, "err", err)
		return false, fmt.Errorf("%w: %v", ErrHashing, err)
	}

	return ok, nil
}

// CreateSession issues a session for a user who just authenticated.
//
// If a session row already exists for the username, the call delegates to
// RefreshSession with that row's refresh token; this is what keeps the
// at-most-one-session invariant. If no row exists, fresh access and refresh
// tokens are drawn independently and inserted. A concurrent creator can win
// the insert between the lookup and our write; the unique constraint on
// username turns that into ErrDuplicateSession, and the loser retries as a
// refresh instead of failing or writing a second row.
func (s *Service) CreateSession(ctx context.Context, now time.Time, username string) (Session, error) {
	existing, err := s.sessions.FindByUsername(ctx, username)
	if err == nil {
		return s.RefreshSession(ctx, now, existing.RefreshToken)
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return Session{}, err
	}

	accessToken, err := token.New(s.cfg.TokenLength)
	if err != nil {
		return Session{}, err
	}
	refreshToken, err := token.New(s.cfg.TokenLength)
	if err != nil {
		return Session{}, err
	}

	expiry := now.Add(s.cfg.SessionTTL)
	sess := Session{
		Username:     username,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiryDate:   &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.sessions.Insert(ctx, sess)
	if errors.Is(err, ErrDuplicateSession) {
		winner, ferr := s.sessions.FindByUsername(ctx, username)
		if ferr != nil {
			return Session{}, ferr
		}
		return s.RefreshSession(ctx, now, winner.RefreshToken)
	}
	if err != nil {
		return Session{}, err
	}

	return sess, nil
}

// RefreshSession exchanges a refresh token for a new access token and expiry.
//
// Presence of the refresh token in the store is the only validity check: the
// token itself carries no expiry and is not rotated on use, matching the
// historical behavior. An unknown token fails with ErrInvalidRefreshToken
// and performs no write.
func (s *Service) RefreshSession(ctx context.Context, now time.Time, refreshToken string) (Session, error) {
	sess, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, fmt.Errorf("%w", ErrInvalidRefreshToken)
		}
		return Session{}, err
	}

	accessToken, err := token.New(s.cfg.TokenLength)
	if err != nil {
		return Session{}, err
	}

	expiry := now.Add(s.cfg.SessionTTL)
	sess.Token = accessToken
	sess.ExpiryDate = &expiry
	sess.UpdatedAt = now

	if err := s.sessions.UpdateTokenAndExpiry(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("could not update token: %w", err)
	}

	return sess, nil
}

// IsExpired reports whether the session's access token is stale: true when
// now is strictly after the expiry date.
//
// A session without an expiry date cannot be produced by this package; if one
// shows up anyway the call returns ErrInvariantViolation rather than guessing
// (or crashing) on behalf of the caller.
func (s *Service) IsExpired(now time.Time, sess Session) (bool, error) {
	if sess.ExpiryDate == nil {
		return false, fmt.Errorf("%w: session for %q has no expiry date", ErrInvariantViolation, sess.Username)
	}
	return now.After(*sess.ExpiryDate), nil
}

func (s *Service) hashPassword(ctx context.Context, plaintext string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return hash, nil
}

func (s *Service) verifyPassword(ctx context.Context, encodedHash, plaintext string) (bool, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.hashSem.Release(1)

	return s.hasher.Verify(encodedHash, plaintext)
}
