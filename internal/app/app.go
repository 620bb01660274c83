package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/database"
	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/persist"
	"github.com/thenoetrevino/taskpilot/internal/session"
	"github.com/thenoetrevino/taskpilot/internal/storage"
	"github.com/thenoetrevino/taskpilot/internal/store"
)

// App holds all application components and provides dependency injection.
// Its lifetime is one application session: created at startup, closed at exit.
type App struct {
	Config *config.Config

	// Storage areas
	Local   storage.Storage
	Session storage.Storage

	// Event system for live updates
	Bus *events.Bus

	// Domain components
	Store       *store.Store
	Board       *board.Board
	Auth        *auth.Session
	Credentials *session.Cache

	db             *sql.DB
	ownsDB         bool
	sessionID      string
	discardSession bool
	logger         *slog.Logger
}

// New opens storage, loads the data store and restores the auth state.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{
		Config:         cfg,
		db:             ac.db,
		sessionID:      ac.sessionID,
		discardSession: ac.discardSession,
		logger:         ac.logger,
	}

	if a.db == nil {
		db, err := database.Open(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		a.ownsDB = true
	}

	quota := cfg.Storage.QuotaBytes
	a.Local = database.NewLocalStore(a.db, quota)
	switch {
	case ac.sessionStorage != nil:
		a.Session = ac.sessionStorage
	case ac.sessionID != "":
		a.Session = database.NewSessionStore(a.db, ac.sessionID, quota)
	default:
		a.Session = storage.NewMemory(quota)
	}

	a.Bus = events.NewBus(a.logger)

	local := persist.NewAdapter(a.Local, a.logger)

	storeOpts := []store.Option{store.WithPublisher(a.Bus), store.WithLogger(a.logger)}
	if ac.clock != nil {
		storeOpts = append(storeOpts, store.WithClock(ac.clock))
	}
	st, err := store.Open(ctx, local, storeOpts...)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Store = st
	a.Board = board.New(st, a.logger)

	cacheOpts := []session.Option{session.WithPublisher(a.Bus), session.WithLogger(a.logger)}
	if ac.hashCost > 0 {
		cacheOpts = append(cacheOpts, session.WithHashCost(ac.hashCost))
	}
	a.Credentials = session.NewCache(a.Session, cacheOpts...)

	a.Auth = auth.NewSession(local, a.Credentials,
		auth.WithDefaultUser(models.User{
			ID:     cfg.DefaultUser.ID,
			Name:   cfg.DefaultUser.Name,
			Email:  cfg.DefaultUser.Email,
			Avatar: cfg.DefaultUser.Avatar,
		}),
		auth.WithPublisher(a.Bus),
		auth.WithLogger(a.logger),
	)
	if err := a.Auth.Init(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.logger.Info("application started",
		"data_dir", cfg.DataDir,
		"session", a.sessionID,
		"authenticated", a.Auth.IsAuthenticated())
	return a, nil
}

// SessionID returns the scope of the session storage area, empty when it
// lives only in memory.
func (a *App) SessionID() string {
	return a.sessionID
}

// Close performs cleanup of application resources.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.discardSession && a.Session != nil {
		if err := a.Session.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to discard session: %w", err))
		}
	}
	if a.Bus != nil {
		a.Bus.Close()
	}
	if a.ownsDB && a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
