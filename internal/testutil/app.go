package testutil

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/database"
)

// SetupTestDB opens a migrated in-memory database closed at test cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

// NewTestApp builds an App over a fresh in-memory database, scoped to the
// "test" session, with the cheapest bcrypt cost. Extra options win.
func NewTestApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	return NewTestAppWithDB(t, SetupTestDB(t), opts...)
}

// NewTestAppWithDB is NewTestApp over an existing database, for tests that
// reopen the same storage.
func NewTestAppWithDB(t *testing.T, db *sql.DB, opts ...app.Option) *app.App {
	t.Helper()

	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	base := []app.Option{
		app.WithDB(db),
		app.WithSessionID("test"),
		app.WithPasswordHashCost(bcrypt.MinCost),
	}
	a, err := app.New(context.Background(), cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(context.Background()); err != nil {
			t.Errorf("Failed to close test app: %v", err)
		}
	})
	return a
}
