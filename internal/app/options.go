package app

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db             *sql.DB
	sessionID      string
	discardSession bool
	sessionStorage storage.Storage
	logger         *slog.Logger
	clock          func() time.Time
	hashCost       int
}

// WithDB uses an already opened and migrated database instead of opening
// the one in the data directory. The App does not close it.
func WithDB(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithSessionID scopes session storage to id. An empty id keeps session
// values in process memory only.
func WithSessionID(id string) Option {
	return func(cfg *appConfig) {
		cfg.sessionID = id
	}
}

// WithDiscardSessionOnClose clears the session scope when the App closes,
// as closing a browser tab would.
func WithDiscardSessionOnClose() Option {
	return func(cfg *appConfig) {
		cfg.discardSession = true
	}
}

// WithSessionStorage overrides the session storage area entirely.
func WithSessionStorage(s storage.Storage) Option {
	return func(cfg *appConfig) {
		cfg.sessionStorage = s
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock replaces time.Now for the data store.
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}

// WithPasswordHashCost sets the bcrypt cost of cached passwords.
func WithPasswordHashCost(cost int) Option {
	return func(cfg *appConfig) {
		cfg.hashCost = cost
	}
}
