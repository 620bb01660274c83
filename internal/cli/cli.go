package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/logging"
)

// DefaultSession is the session scope of commands run without --session,
// TASKPILOT_SESSION or a configured session.
const DefaultSession = "default"

type contextKey int

const (
	appKey contextKey = iota
	sessionKey
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with the data store and auth
	owned bool
}

// WithApp makes GetCLIFromContext hand out a CLI over a, which the CLI
// will not close. Tests use it to run commands against an in-memory app.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithSession records the --session flag for GetCLIFromContext.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionFromContext returns the session ID stored by WithSession.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// GetCLIFromContext returns the CLI injected with WithApp, or opens a new
// one scoped to the session stored in ctx.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx, SessionFromContext(ctx))
}

// NewCLI loads the configuration, starts file logging and opens the app.
// An empty sessionID falls back to the configured session, then to
// DefaultSession.
func NewCLI(ctx context.Context, sessionID string) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logging.Init(cfg.DataDir, cfg.SlogLevel()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if sessionID == "" {
		sessionID = cfg.Session
	}
	if sessionID == "" {
		sessionID = DefaultSession
	}

	application, err := app.New(ctx, cfg,
		app.WithSessionID(sessionID),
		app.WithLogger(logging.Logger),
	)
	if err != nil {
		_ = logging.Close()
		return nil, err
	}

	return &CLI{App: application, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close(ctx context.Context) error {
	if !c.owned {
		return nil
	}
	err := c.App.Close(ctx)
	if logErr := logging.Close(); err == nil {
		err = logErr
	}
	return err
}
