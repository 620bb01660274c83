// Package persist is the JSON read/write boundary between in-memory state
// and a storage area.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// Adapter reads and writes JSON values under string keys of one storage area.
// It does no locking: concurrent writers of the same key race, last write wins.
type Adapter struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewAdapter wraps s. A nil logger means slog.Default().
func NewAdapter(s storage.Storage, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{storage: s, logger: logger}
}

// Storage returns the wrapped storage area.
func (a *Adapter) Storage() storage.Storage {
	return a.storage
}

// Load returns the value stored under key.
//
// A missing key yields def, which is written back immediately so the key
// exists afterwards. A value that does not decode yields def without touching
// storage. Only storage read errors (and failures to seed def) are returned.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) (T, error) {
	raw, ok, err := a.storage.GetItem(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %q: %w", key, err)
	}

	if !ok {
		if err := a.Save(ctx, key, def); err != nil {
			return def, err
		}
		return def, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		a.logger.Warn("stored value is malformed, using default",
			"key", key,
			"error", err)
		return def, nil
	}
	return value, nil
}

// Save encodes v as JSON and overwrites key unconditionally.
// Storage failures come back as *WriteError.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: fmt.Errorf("failed to encode: %w", err)}
	}
	if err := a.storage.SetItem(ctx, key, string(data)); err != nil {
		a.logger.Error("write-through failed", "key", key, "bytes", len(data), "error", err)
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.storage.RemoveItem(ctx, key); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
