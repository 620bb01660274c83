// Package storage defines the key/value storage areas the application
// persists into: a durable area that survives restarts and a session area
// bound to one running program.
package storage

import (
	"context"
	"errors"
)

// DefaultQuotaBytes bounds one storage area, mirroring the usual 5 MiB
// per-origin limit of browser storage.
const DefaultQuotaBytes = 5 << 20

var (
	// ErrQuotaExceeded is returned by SetItem when the write would grow the
	// area past its quota. The previous value is left in place.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrClosed is returned by every operation on a closed area.
	ErrClosed = errors.New("storage is closed")
)

// Storage is a string-keyed, string-valued storage area.
type Storage interface {
	// GetItem returns the stored value and whether the key exists
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem overwrites the value for key unconditionally
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key; removing a missing key is not an error
	RemoveItem(ctx context.Context, key string) error

	// Keys lists the stored keys in ascending order
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key of the area
	Clear(ctx context.Context) error
}

// EntrySize is the number of bytes a key/value pair counts against a quota.
func EntrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
