// Package session persists the access token and cached user profile. It is
// storage only: no method here emits notifications, that is the auth
// manager's job.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"devbase/internal/config"
	"devbase/internal/service"
)

// Store holds the session files under the config directory. The auth
// manager is the sole writer; everything else reads.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Token returns the stored access token, or "" for a missing, empty, or
// whitespace-only value. A non-empty return means the caller is treated as
// authenticated.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken persists the token with mode 0600. No format validation.
func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath(), []byte(token), 0600)
}

// ClearToken removes the stored token. Missing is not an error.
func (s *Store) ClearToken() error {
	err := os.Remove(s.tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// User returns the cached profile, or nil when missing or unparseable.
// Storage corruption degrades to "absent", never an error.
func (s *Store) User() *service.User {
	data, err := os.ReadFile(s.userPath())
	if err != nil {
		return nil
	}
	var u service.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// SetUser persists the profile with mode 0600.
func (s *Store) SetUser(u *service.User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.userPath(), data, 0600)
}

// ClearUser removes the cached profile. Missing is not an error.
func (s *Store) ClearUser() error {
	err := os.Remove(s.userPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.dir, config.TokenFile)
}

func (s *Store) userPath() string {
	return filepath.Join(s.dir, config.UserFile)
}
