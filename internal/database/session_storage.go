package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// SessionStore is a storage area scoped to one session id. Several CLI
// invocations sharing an id see the same values; Close discards them.
type SessionStore struct {
	db        *sql.DB
	sessionID string
	quota     int64
}

// NewSessionStore wraps db for the given session. A quota <= 0 disables the
// size limit.
func NewSessionStore(db *sql.DB, sessionID string, quota int64) *SessionStore {
	return &SessionStore{db: db, sessionID: sessionID, quota: quota}
}

// SessionID returns the scope this store reads and writes.
func (s *SessionStore) SessionID() string {
	return s.sessionID
}

func (s *SessionStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_storage WHERE session_id = ? AND key = ?`,
		s.sessionID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SessionStore) SetItem(ctx context.Context, key, value string) error {
	return withTx(ctx, s.db, func(tx dbtx) error {
		if s.quota > 0 {
			var used int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
				 FROM session_storage WHERE session_id = ? AND key != ?`,
				s.sessionID, key).Scan(&used)
			if err != nil {
				return fmt.Errorf("failed to measure session storage: %w", err)
			}
			if used+storage.EntrySize(key, value) > s.quota {
				return storage.ErrQuotaExceeded
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_storage (session_id, key, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(session_id, key) DO UPDATE
			SET value = excluded.value, updated_at = excluded.updated_at
		`, s.sessionID, key, value)
		if err != nil {
			return fmt.Errorf("failed to set session item %q: %w", key, err)
		}
		return nil
	})
}

func (s *SessionStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_storage WHERE session_id = ? AND key = ?`, s.sessionID, key)
	if err != nil {
		return fmt.Errorf("failed to remove session item %q: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM session_storage WHERE session_id = ? ORDER BY key`, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}
	return collectKeys(rows)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_storage WHERE session_id = ?`, s.sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session %q: %w", s.sessionID, err)
	}
	return nil
}

// Close ends the session by discarding everything stored under its id.
// The underlying database stays open.
func (s *SessionStore) Close(ctx context.Context) error {
	return s.Clear(ctx)
}

var _ storage.Storage = (*SessionStore)(nil)
