package storage

import (
	"context"
	"sort"
	"sync"
)

// Memory is a map-backed Storage. It backs the session area of a program
// started without a named session, and it is handy in tests.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	quota  int64
	closed bool
}

// NewMemory creates an empty area limited to quota bytes.
// A quota <= 0 disables the limit.
func NewMemory(quota int64) *Memory {
	return &Memory{
		items: make(map[string]string),
		quota: quota,
	}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if m.quota > 0 {
		var used int64
		for k, v := range m.items {
			if k != key {
				used += EntrySize(k, v)
			}
		}
		if used+EntrySize(key, value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.items = make(map[string]string)
	return nil
}

// Close drops every item; the area is unusable afterwards.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.closed = true
	return nil
}

// Compile-time verification that *Memory implements Storage
var _ Storage = (*Memory)(nil)
