// Package session caches the signed-in identity in the session storage area.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// CredentialsKey is the session storage key holding the cached identity
const CredentialsKey = "User_Credentials"

// Cache reads and writes the credentials of the current session.
type Cache struct {
	storage   storage.Storage
	publisher events.Publisher
	logger    *slog.Logger
	cost      int
}

// Option configures a Cache
type Option func(*Cache)

// WithPublisher sets where credentials_changed is announced.
func WithPublisher(p events.Publisher) Option {
	return func(c *Cache) { c.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithHashCost sets the bcrypt cost used for passwords.
func WithHashCost(cost int) Option {
	return func(c *Cache) { c.cost = cost }
}

// NewCache creates a cache over a session-scoped storage area.
func NewCache(s storage.Storage, opts ...Option) *Cache {
	c := &Cache{
		storage: s,
		logger:  slog.Default(),
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached credentials. Absent and malformed entries both
// report ok=false.
func (c *Cache) Get(ctx context.Context) (models.Credentials, bool, error) {
	raw, ok, err := c.storage.GetItem(ctx, CredentialsKey)
	if err != nil {
		return models.Credentials{}, false, fmt.Errorf("failed to read credentials: %w", err)
	}
	if !ok {
		return models.Credentials{}, false, nil
	}

	var creds models.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		c.logger.Warn("cached credentials are malformed, ignoring", "error", err)
		return models.Credentials{}, false, nil
	}
	return creds, true, nil
}

// Save stores creds for the session. creds.Password is the plain text
// password; it is hashed before storage. An empty password keeps the hash
// already cached.
func (c *Cache) Save(ctx context.Context, creds models.Credentials) error {
	if creds.Password == "" {
		previous, ok, err := c.Get(ctx)
		if err != nil {
			return err
		}
		if ok {
			creds.Password = previous.Password
		}
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), c.cost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		creds.Password = string(hash)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := c.storage.SetItem(ctx, CredentialsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	c.logger.Debug("session credentials saved", "name", creds.Name)
	events.Publish(c.publisher, events.Event{Type: events.CredentialsChanged})
	return nil
}

// CheckPassword reports whether password matches the cached hash.
// Without cached credentials or hash it reports false.
func (c *Cache) CheckPassword(ctx context.Context, password string) (bool, error) {
	creds, ok, err := c.Get(ctx)
	if err != nil || !ok || creds.Password == "" {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(password)) == nil, nil
}

// Clear forgets the cached credentials.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.storage.RemoveItem(ctx, CredentialsKey); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	events.Publish(c.publisher, events.Event{Type: events.CredentialsChanged})
	return nil
}
