// Package auth tracks whether the user is signed in and who they are.
// There is no credential check: signing in always succeeds.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/persist"
	"github.com/thenoetrevino/taskpilot/internal/session"
)

// FlagKey is the durable storage key of the signed-in flag
const FlagKey = "auth"

// State of an auth session
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type flag struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// SignInRequest carries the sign-in form fields
type SignInRequest struct {
	Name     string
	Email    string
	Password string
}

// ProfileRequest carries the profile form fields
type ProfileRequest struct {
	Name  string
	Email string
}

// Session is the auth state machine: loading until Init, then
// authenticated or unauthenticated, switched by Login and Logout.
type Session struct {
	mu    sync.Mutex
	state State

	local       *persist.Adapter
	creds       *session.Cache
	defaultUser models.User
	publisher   events.Publisher
	logger      *slog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithDefaultUser replaces DefaultUser as the base identity.
func WithDefaultUser(u models.User) Option {
	return func(s *Session) { s.defaultUser = u }
}

// WithPublisher sets where auth_changed is announced.
func WithPublisher(p events.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session in the loading state. local is the durable
// area holding the flag; creds is the session credential cache.
func NewSession(local *persist.Adapter, creds *session.Cache, opts ...Option) *Session {
	s := &Session{
		state:       StateLoading,
		local:       local,
		creds:       creds,
		defaultUser: DefaultUser,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init leaves the loading state by reading the persisted flag. It runs once;
// later calls (or calls after Login/Logout) do nothing. A missing, malformed
// or false flag means unauthenticated.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return nil
	}

	raw, ok, err := s.local.Storage().GetItem(ctx, FlagKey)
	if err != nil {
		s.state = StateUnauthenticated
		return fmt.Errorf("failed to read auth flag: %w", err)
	}

	s.state = StateUnauthenticated
	if ok {
		var f flag
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			s.logger.Warn("auth flag is malformed, treating as signed out", "error", err)
		} else if f.IsAuthenticated {
			s.state = StateAuthenticated
		}
	}
	s.logger.Debug("auth session initialized", "state", s.state)
	return nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether the user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Login switches to authenticated and persists the flag. The state changes
// even when the flag cannot be written.
func (s *Session) Login(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.mu.Unlock()

	events.Publish(s.publisher, events.Event{Type: events.AuthChanged})
	s.logger.Info("signed in")
	return s.local.Save(ctx, FlagKey, flag{IsAuthenticated: true})
}

// Logout switches to unauthenticated and removes the flag. Cached
// credentials are kept for the rest of the session.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.mu.Unlock()

	events.Publish(s.publisher, events.Event{Type: events.AuthChanged})
	s.logger.Info("signed out")
	return s.local.Remove(ctx, FlagKey)
}

// User returns the signed-in identity, or nil when not authenticated.
func (s *Session) User(ctx context.Context) (*models.User, error) {
	if !s.IsAuthenticated() {
		return nil, nil
	}
	user, err := s.Identity(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Identity resolves the display identity regardless of state: the default
// user merged with the cached credentials. Unreadable credentials fall back
// to the default user.
func (s *Session) Identity(ctx context.Context) (models.User, error) {
	creds, ok, err := s.creds.Get(ctx)
	if err != nil {
		return s.defaultUser, err
	}
	if !ok {
		return s.defaultUser, nil
	}
	return ResolveUser(s.defaultUser, creds), nil
}

// SignIn validates the form, caches the credentials for the session and
// logs in. Blank fields fail with ErrMissingFields before anything is
// written.
func (s *Session) SignIn(ctx context.Context, req SignInRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return ErrMissingFields
	}

	err := s.creds.Save(ctx, models.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return s.Login(ctx)
}

// SaveProfile overrides name and email for the session. Both are required;
// nothing is written when either is blank.
func (s *Session) SaveProfile(ctx context.Context, req ProfileRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(req.Email) == "" {
		return ErrEmptyEmail
	}

	return s.creds.Save(ctx, models.Credentials{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	})
}
