package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

func TestSessionStore_ScopedBySessionID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := NewSessionStore(db, "tab-a", 0)
	b := NewSessionStore(db, "tab-b", 0)

	require.NoError(t, a.SetItem(ctx, "User_Credentials", `{"name":"Ann"}`))

	_, ok, err := b.GetItem(ctx, "User_Credentials")
	require.NoError(t, err)
	assert.False(t, ok, "sessions must not see each other's items")

	value, ok, err := NewSessionStore(db, "tab-a", 0).GetItem(ctx, "User_Credentials")
	require.NoError(t, err)
	assert.True(t, ok, "a second handle on the same session shares items")
	assert.Equal(t, `{"name":"Ann"}`, value)
}

func TestSessionStore_CloseDiscardsOnlyItsScope(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := NewSessionStore(db, "tab-a", 0)
	b := NewSessionStore(db, "tab-b", 0)

	require.NoError(t, a.SetItem(ctx, "k", "1"))
	require.NoError(t, b.SetItem(ctx, "k", "2"))

	require.NoError(t, a.Close(ctx))

	keys, err := a.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	value, ok, err := b.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestSessionStore_QuotaIsPerSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := NewSessionStore(db, "a", 16)
	b := NewSessionStore(db, "b", 16)

	require.NoError(t, a.SetItem(ctx, "k", strings.Repeat("x", 15)))
	require.NoError(t, b.SetItem(ctx, "k", strings.Repeat("y", 15)))
	require.ErrorIs(t, a.SetItem(ctx, "k2", "z"), storage.ErrQuotaExceeded)

	value, _, err := a.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 15), value)
}

func TestSessionStore_RemoveItem(t *testing.T) {
	s := NewSessionStore(setupTestDB(t), "tab", 0)
	ctx := context.Background()

	require.NoError(t, s.SetItem(ctx, "k", "v"))
	require.NoError(t, s.RemoveItem(ctx, "k"))

	_, ok, err := s.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "tab", s.SessionID())
}
