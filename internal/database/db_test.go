package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFileAndTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	ctx := context.Background()

	db, err := Open(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.FileExists(t, filepath.Join(dir, FileName))

	for _, table := range []string{"local_storage", "session_storage"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, NewLocalStore(db, 0).SetItem(ctx, "projects", `[]`))
	require.NoError(t, db.Close())

	// migrations must be idempotent on an existing file
	db, err = Open(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	value, ok, err := NewLocalStore(db, 0).GetItem(ctx, "projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestOpenMemory_IsolatedInstances(t *testing.T) {
	ctx := context.Background()
	a := setupTestDB(t)
	b := setupTestDB(t)

	require.NoError(t, NewLocalStore(a, 0).SetItem(ctx, "k", "v"))

	_, ok, err := NewLocalStore(b, 0).GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
