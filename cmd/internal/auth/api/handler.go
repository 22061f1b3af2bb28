// Package authapi exposes the credential and session lifecycle over HTTP.
//
// All endpoints answer with a {is_successful, message} envelope. Access and
// refresh tokens are delivered as HttpOnly cookies, never in response bodies;
// the refresh token cookie is path-scoped to the refresh endpoint so browsers
// only present it there.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"waypoint/cmd/identity"
	"waypoint/cmd/internal/auth/session"
)

// Route paths registered by the handler.
const (
	SignUpPath  = "/api/v1/sign_up"
	LoginPath   = "/api/v1/login"
	RefreshPath = "/api/v1/refresh_token"
)

// Handler wires HTTP auth endpoints to the session service.
type Handler struct {
	log      *slog.Logger
	cfg      Config
	sessions *session.Service
	sessCfg  session.Config
}

// NewHandler constructs an auth Handler around an already-wired session
// service. The service carries the stores, so the handler works identically
// in Postgres and in-memory modes.
func NewHandler(log *slog.Logger, cfg Config, sessCfg session.Config, svc *session.Service) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if svc == nil {
		return nil, errors.New("authapi: nil session service")
	}

	return &Handler{
		log:      log,
		cfg:      cfg,
		sessions: svc,
		sessCfg:  sessCfg,
	}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc(SignUpPath, h.handleSignUp)
	mux.HandleFunc(LoginPath, h.handleLogin)
	mux.HandleFunc(RefreshPath, h.handleRefresh)
}

// ---- handlers ----

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signUpRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "Invalid request body.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeStatus(w, http.StatusBadRequest, false, "Username is required.")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	// The password is passed through untouched: any byte sequence is a valid
	// password, including the empty one.
	_, err := h.sessions.SignUp(ctx, now, session.SignUpInput{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Password: req.Password,
	})
	switch {
	case err == nil:
		writeStatus(w, http.StatusCreated, true, "Signed up successfully.")
	case identity.IsDuplicate(err):
		writeStatus(w, http.StatusConflict, false, "Username is already taken.")
	default:
		h.log.Error("auth.sign_up.fail", "err", err)
		writeStatus(w, http.StatusInternalServerError, false, "Could not sign up.")
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "Invalid request body.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeStatus(w, http.StatusBadRequest, false, "Username is required.")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	ok, err := h.sessions.Login(ctx, username, req.Password)
	if err != nil && !identity.IsNotFound(err) {
		h.log.Error("auth.login.fail", "err", err)
		writeStatus(w, http.StatusInternalServerError, false, "Could not log in.")
		return
	}
	// Unknown user and wrong password are indistinguishable to the client.
	if !ok {
		writeStatus(w, http.StatusUnauthorized, false, "Invalid username or password.")
		return
	}

	sess, err := h.sessions.CreateSession(ctx, now, username)
	if err != nil {
		h.log.Error("auth.login.create_session.fail", "err", err)
		writeStatus(w, http.StatusInternalServerError, false, "Could not log in.")
		return
	}

	h.setSessionCookies(w, sess)
	writeStatus(w, http.StatusOK, true, "Logged in successfully.")
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	refreshToken := h.refreshTokenFrom(r)
	if refreshToken == "" {
		writeStatus(w, http.StatusBadRequest, false, "Refresh token is required.")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	sess, err := h.sessions.RefreshSession(ctx, now, refreshToken)
	switch {
	case err == nil:
		h.setTokenCookie(w, sess)
		writeStatus(w, http.StatusOK, true, "Token refreshed successfully.")
	case errors.Is(err, session.ErrInvalidRefreshToken):
		writeStatus(w, http.StatusUnauthorized, false, "Invalid refresh token.")
	default:
		h.log.Error("auth.refresh.fail", "err", err)
		writeStatus(w, http.StatusInternalServerError, false, "Could not refresh token.")
	}
}

// ---- token transport ----

// refreshTokenFrom reads the refresh token from the REFRESH_TOKEN header
// first, then falls back to the path-scoped cookie.
func (h *Handler) refreshTokenFrom(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(RefreshHeaderName)); v != "" {
		return v
	}
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// setSessionCookies sets both the access token and refresh token cookies,
// used at login. The refresh cookie carries no Max-Age: the stored refresh
// token never expires, so the cookie lives for the browser session and is
// re-established on the next login.
func (h *Handler) setSessionCookies(w http.ResponseWriter, sess session.Session) {
	h.setTokenCookie(w, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    sess.RefreshToken,
		Path:     RefreshPath,
		Domain:   h.cfg.CookieDomain,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// setTokenCookie sets the access token cookie with Max-Age matching the
// session TTL, so the browser drops it when the token goes stale.
func (h *Handler) setTokenCookie(w http.ResponseWriter, sess session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    sess.Token,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   int(h.sessCfg.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
