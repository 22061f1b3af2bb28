package authapi

import (
	"os"
	"strconv"
	"strings"
)

// Cookie and header names used by the token transport.
const (
	TokenCookieName   = "token"
	RefreshCookieName = "refresh_token"

	// RefreshHeaderName lets non-browser clients present the refresh token
	// without cookie handling.
	RefreshHeaderName = "REFRESH_TOKEN"
)

// Config controls auth API behavior and security defaults.
type Config struct {
	// MaxBodyBytes caps request body size for JSON decoding.
	MaxBodyBytes int64

	// SecureCookies marks session cookies Secure. Disable only for local
	// plain-HTTP development.
	SecureCookies bool

	// CookieDomain scopes session cookies; empty means host-only.
	CookieDomain string
}

// LoadConfigFromEnv loads auth API config from environment variables with
// safe defaults.
func LoadConfigFromEnv() Config {
	return Config{
		MaxBodyBytes:  envInt64("WAYPOINT_AUTH_MAX_BODY_BYTES", 1<<20), // 1 MiB
		SecureCookies: envBool("WAYPOINT_AUTH_SECURE_COOKIES", true),
		CookieDomain:  strings.TrimSpace(os.Getenv("WAYPOINT_AUTH_COOKIE_DOMAIN")),
	}
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
