package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// LocalStore is the durable storage area. Values survive restarts of the
// program; there is one area per data directory.
type LocalStore struct {
	db    *sql.DB
	quota int64
}

// NewLocalStore wraps db. A quota <= 0 disables the size limit.
func NewLocalStore(db *sql.DB, quota int64) *LocalStore {
	return &LocalStore{db: db, quota: quota}
}

func (s *LocalStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get local item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *LocalStore) SetItem(ctx context.Context, key, value string) error {
	return withTx(ctx, s.db, func(tx dbtx) error {
		if s.quota > 0 {
			var used int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
				 FROM local_storage WHERE key != ?`, key).Scan(&used)
			if err != nil {
				return fmt.Errorf("failed to measure local storage: %w", err)
			}
			if used+storage.EntrySize(key, value) > s.quota {
				return storage.ErrQuotaExceeded
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set local item %q: %w", key, err)
		}
		return nil
	})
}

func (s *LocalStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove local item %q: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM local_storage ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list local keys: %w", err)
	}
	return collectKeys(rows)
}

func (s *LocalStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage`); err != nil {
		return fmt.Errorf("failed to clear local storage: %w", err)
	}
	return nil
}

var _ storage.Storage = (*LocalStore)(nil)
