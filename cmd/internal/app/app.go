// Package app wires the Waypoint server runtime: config, logging, metrics,
// stores, and HTTP routes.
//
// Without WAYPOINT_DATABASE_URL the runtime falls back to in-memory stores so
// the auth flow can be exercised locally without Postgres.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"waypoint/cmd/identity"
	authapi "waypoint/cmd/internal/auth/api"
	"waypoint/cmd/internal/auth/session"
	"waypoint/cmd/security/password"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App is the Waypoint server runtime: it owns the store lifecycle and HTTP
// server wiring.
type App struct {
	cfg Config
	log Logger

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics *Metrics
	auth    *authapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	dbPool, dbEnabled, err := newDB(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}
	hasher, err := password.FromEnv()
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	var users identity.Store
	var sessions session.Store
	if dbEnabled {
		pgUsers, err := identity.NewPostgresStore(dbPool)
		if err != nil {
			dbPool.Close()
			return nil, err
		}
		users = pgUsers
		sessions = session.NewPostgresStore(dbPool)
	} else {
		users = identity.NewMemoryStore()
		sessions = session.NewMemoryStore()
	}

	svc := session.NewService(sessCfg, log, users, sessions, hasher)

	authCfg := authapi.LoadConfigFromEnv()
	authHandler, err := authapi.NewHandler(log, authCfg, sessCfg, svc)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		metrics:   NewMetrics(),
		auth:      authHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.auth)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(mux, a.log, a.metrics),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newDB decides between Postgres-backed persistence and in-memory dev stores.
func newDB(ctx context.Context, cfg Config, log Logger) (*pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, false, err
	}

	log.Info("db.enabled.postgres_store")
	return pool, true, nil
}
