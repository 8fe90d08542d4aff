// Package auth orchestrates the session lifecycle: login and registration
// against the backend, persistence through the session store, and the
// auth-changed broadcast. It is the only writer of authentication state.
package auth

import (
	"context"
	"errors"
	"net/http"

	"devbase/internal/api"
	"devbase/internal/event"
	"devbase/internal/service"
	"devbase/internal/session"
)

// Manager moves the session between anonymous and authenticated.
type Manager struct {
	api      *api.Client
	sessions *session.Store
	bus      *event.Bus
}

// NewManager creates a Manager.
func NewManager(apiClient *api.Client, sessions *session.Store, bus *event.Bus) *Manager {
	return &Manager{api: apiClient, sessions: sessions, bus: bus}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	User        service.User `json:"user"`
}

// Login authenticates with email and password. The call sends no bearer
// header even when a stale token is still stored. On success the token and
// profile are persisted before the auth-changed broadcast; on failure the
// session is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*service.User, error) {
	return m.authenticate(ctx, "/api/auth/login", credentials{Email: email, Password: password})
}

// Register creates an account and performs an implicit login. Name is
// optional.
func (m *Manager) Register(ctx context.Context, email, password, name string) (*service.User, error) {
	return m.authenticate(ctx, "/api/auth/register", credentials{Email: email, Password: password, Name: name})
}

func (m *Manager) authenticate(ctx context.Context, path string, creds credentials) (*service.User, error) {
	var resp authResponse
	err := m.api.Do(ctx, http.MethodPost, path, api.Options{Body: creds, Token: api.NoToken()}, &resp)
	if err != nil {
		return nil, err
	}

	if err := m.sessions.SetToken(resp.AccessToken); err != nil {
		return nil, err
	}
	if err := m.sessions.SetUser(&resp.User); err != nil {
		return nil, err
	}
	m.bus.Publish(event.AuthChanged, "")
	return &resp.User, nil
}

// Logout clears the token and cached profile, then broadcasts. It is
// idempotent: calling it while already anonymous only re-broadcasts.
func (m *Manager) Logout() error {
	err := errors.Join(m.sessions.ClearToken(), m.sessions.ClearUser())
	m.bus.Publish(event.AuthChanged, "")
	return err
}

// CurrentUser returns the cached profile, or nil.
func (m *Manager) CurrentUser() *service.User {
	return m.sessions.User()
}

// IsAuthenticated reports whether a token is present. Token presence alone
// decides this; a missing cached profile does not make the session
// anonymous.
func (m *Manager) IsAuthenticated() bool {
	return m.sessions.Token() != ""
}
