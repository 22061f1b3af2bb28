package session

import (
	"os"
	"strconv"
	"time"

	"waypoint/cmd/security/token"
)

// Config defines all runtime configuration for the session subsystem.
//
// It controls the access-token lifetime, token entropy, and the size of the
// bounded pool that password hashing runs on. It is intentionally explicit
// and environment-driven so production deployments can tune security
// parameters without code changes.
type Config struct {
	// SessionTTL is the access-token lifetime applied at session creation and
	// on every refresh.
	SessionTTL time.Duration

	// TokenLength is the character count of both access and refresh tokens.
	TokenLength int

	// HashWorkers bounds how many password hash/verify operations may run
	// concurrently. Hashing is CPU-bound; the bound keeps a burst of logins
	// from starving I/O-bound request handling.
	HashWorkers int
}

// DefaultConfig returns defaults suitable for development.
func DefaultConfig() Config {
	return Config{
		SessionTTL:  30 * time.Minute,
		TokenLength: token.DefaultLength,
		HashWorkers: 4,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional (durations must be valid Go duration strings):
//   - WAYPOINT_SESSION_TTL
//   - WAYPOINT_SESSION_TOKEN_LENGTH
//   - WAYPOINT_SESSION_HASH_WORKERS
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("WAYPOINT_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("WAYPOINT_SESSION_TOKEN_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 512 {
			return Config{}, ErrConfig
		}
		cfg.TokenLength = n
	}

	if v := os.Getenv("WAYPOINT_SESSION_HASH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 64 {
			return Config{}, ErrConfig
		}
		cfg.HashWorkers = n
	}

	return cfg, nil
}
