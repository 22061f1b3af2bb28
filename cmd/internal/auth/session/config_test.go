package session

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v; want 30m", cfg.SessionTTL)
	}
	if cfg.TokenLength != 128 {
		t.Errorf("TokenLength = %d; want 128", cfg.TokenLength)
	}
	if cfg.HashWorkers != 4 {
		t.Errorf("HashWorkers = %d; want 4", cfg.HashWorkers)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("WAYPOINT_SESSION_TTL", "15m")
	t.Setenv("WAYPOINT_SESSION_TOKEN_LENGTH", "64")
	t.Setenv("WAYPOINT_SESSION_HASH_WORKERS", "2")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("SessionTTL = %v; want 15m", cfg.SessionTTL)
	}
	if cfg.TokenLength != 64 {
		t.Errorf("TokenLength = %d; want 64", cfg.TokenLength)
	}
	if cfg.HashWorkers != 2 {
		t.Errorf("HashWorkers = %d; want 2", cfg.HashWorkers)
	}
}

func TestLoadConfigFromEnvInvalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed ttl", "WAYPOINT_SESSION_TTL", "soon"},
		{"negative ttl", "WAYPOINT_SESSION_TTL", "-5m"},
		{"zero ttl", "WAYPOINT_SESSION_TTL", "0s"},
		{"token length too short", "WAYPOINT_SESSION_TOKEN_LENGTH", "8"},
		{"token length too long", "WAYPOINT_SESSION_TOKEN_LENGTH", "4096"},
		{"token length not a number", "WAYPOINT_SESSION_TOKEN_LENGTH", "many"},
		{"zero workers", "WAYPOINT_SESSION_HASH_WORKERS", "0"},
		{"too many workers", "WAYPOINT_SESSION_HASH_WORKERS", "1000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfigFromEnv()
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("LoadConfigFromEnv() err = %v; want ErrConfig", err)
			}
		})
	}
}
