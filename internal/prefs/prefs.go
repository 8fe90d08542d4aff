// Package prefs persists the local-only notification preferences. These
// never leave the machine; the backend knows nothing about them.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preference keys accepted by Set.
const (
	KeyEmailNotifications = "email-notifications"
	KeyTaskReminders      = "task-reminders"
)

// Prefs are the two local notification toggles. Both default to off.
type Prefs struct {
	EmailNotifications bool `json:"emailNotifications"`
	TaskReminders      bool `json:"taskReminders"`
}

// Store persists Prefs as a JSON file.
type Store struct {
	path string
}

// NewStore creates a Store persisting at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored preferences. Missing or corrupt storage degrades
// to the defaults.
func (s *Store) Load() Prefs {
	var p Prefs
	data, err := os.ReadFile(s.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// Save persists the preferences with mode 0600.
func (s *Store) Save(p Prefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Set updates one preference by key and persists.
func (s *Store) Set(key string, on bool) error {
	p := s.Load()
	switch key {
	case KeyEmailNotifications:
		p.EmailNotifications = on
	case KeyTaskReminders:
		p.TaskReminders = on
	default:
		return fmt.Errorf("unknown preference: %s", key)
	}
	return s.Save(p)
}
