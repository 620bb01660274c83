// Package launcher starts the interactive TUI.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/logging"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/tui"
)

// Options controls how the TUI is launched
type Options struct {
	// SessionID scopes session storage. Empty starts a fresh session that is
	// discarded on exit, like a new browser tab.
	SessionID string

	// StartPath is the first route shown, subject to the sign-in gate.
	StartPath string
}

// Launch starts the TUI application and blocks until it exits.
func Launch(parent context.Context, opts Options) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logging to file before anything else
	if err := logging.Init(cfg.DataDir, cfg.SlogLevel()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
		}
	}()

	appOpts := []app.Option{app.WithLogger(logging.Logger)}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		appOpts = append(appOpts, app.WithDiscardSessionOnClose())
	}
	appOpts = append(appOpts, app.WithSessionID(sessionID))

	application, err := app.New(ctx, cfg, appOpts...)
	if err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	defer func() {
		// The signal context may already be done here
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := application.Close(closeCtx); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	start := opts.StartPath
	if start == "" {
		start = routes.DashboardPath
	}
	model := tui.New(ctx, application, tui.WithStartPath(start), tui.WithLogger(logging.Logger))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			slog.Info("shutdown signal received, cleaning up")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
