package app

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/database"
	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestApp(t *testing.T, db *sql.DB, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithDB(db), WithPasswordHashCost(bcrypt.MinCost)}, opts...)
	a, err := New(context.Background(), config.Default(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestNew(t *testing.T) {
	a := newTestApp(t, setupTestDB(t))

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Board)
	assert.NotNil(t, a.Auth)
	assert.NotNil(t, a.Credentials)
	assert.NotNil(t, a.Bus)
	assert.Equal(t, auth.StateUnauthenticated, a.Auth.State())
	assert.Empty(t, a.SessionID())
}

func TestNew_RestoresStateFromDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := newTestApp(t, db)
	p, err := first.Store.AddProject(ctx, models.NewProject{Name: "Alpha"})
	require.NoError(t, err)
	require.NoError(t, first.Auth.Login(ctx))
	require.NoError(t, first.Close(ctx))

	second := newTestApp(t, db)
	assert.True(t, second.Auth.IsAuthenticated())
	got, ok := second.Store.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestNew_NamedSessionSharedAcrossApps(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := newTestApp(t, db, WithSessionID("shell-1"))
	require.NoError(t, first.Auth.SignIn(ctx, auth.SignInRequest{Name: "Ann", Email: "a@b", Password: "pw"}))

	second := newTestApp(t, db, WithSessionID("shell-1"))
	u, err := second.Auth.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ann", u.Name)

	other := newTestApp(t, db, WithSessionID("shell-2"))
	u, err = other.Auth.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.Default().DefaultUser.Name, u.Name, "other sessions see the default user")
}

func TestClose_DiscardsSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := newTestApp(t, db, WithSessionID("tab"), WithDiscardSessionOnClose())
	require.NoError(t, a.Auth.SignIn(ctx, auth.SignInRequest{Name: "Ann", Email: "a@b", Password: "pw"}))
	require.NoError(t, a.Close(ctx))

	keys, err := database.NewSessionStore(db, "tab", 0).Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBus_ReceivesStoreEvents(t *testing.T) {
	a := newTestApp(t, setupTestDB(t))
	ch, unsub := a.Bus.Subscribe(4)
	defer unsub()

	_, err := a.Store.AddProject(context.Background(), models.NewProject{Name: "Alpha"})
	require.NoError(t, err)

	e := <-ch
	assert.Equal(t, events.ProjectsChanged, e.Type)
}

func TestNew_OpensDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, a.Close(context.Background()))
	assert.FileExists(t, cfg.DataDir+"/"+database.FileName)
}
