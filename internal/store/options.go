package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/taskpilot/internal/events"
)

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPublisher sets where change events are published.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func defaultID() string {
	return uuid.NewString()
}
