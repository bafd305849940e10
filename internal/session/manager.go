package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/butchery-shop/internal/cache"
)

var ErrNoSession = errors.New("no session")

// Session is a logged-in admin. Its ID is the cookie value.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager drives the LoggedOut -> LoggedIn -> LoggedOut cycle.
type Manager struct {
	auth  *Authenticator
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(auth *Authenticator, c cache.Cache, ttl time.Duration) *Manager {
	return &Manager{auth: auth, cache: c, ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func key(id string) string { return "session:" + id }

// Login verifies the credentials and stores a new session. Nothing is stored on failure.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := m.auth.Check(username, password); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := m.cache.Set(ctx, key(s.ID), raw, m.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Restore looks the session up server-side; a cookie alone is never trusted.
func (m *Manager) Restore(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoSession
	}
	raw, err := m.cache.Get(ctx, key(id))
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !m.now().Before(s.ExpiresAt) {
		_ = m.cache.Delete(ctx, key(id))
		return nil, ErrNoSession
	}
	return &s, nil
}

// Logout forgets the session. Unknown ids are fine.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.cache.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
