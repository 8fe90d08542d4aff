// Package theme persists the appearance preference and announces changes on
// the theme channel.
package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"

	"devbase/internal/event"
)

// Preference is the appearance setting. The set is closed: anything other
// than the two literal values in storage is treated as absent.
type Preference string

const (
	Dark  Preference = "dark"
	Light Preference = "light"
)

// Valid reports whether v is exactly one of the two preference values.
func Valid(v string) bool {
	return v == string(Dark) || v == string(Light)
}

// Toggle cycles between the two preferences. Pure, no I/O.
func Toggle(p Preference) Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Store persists the preference to a single file and owns all writes to it.
type Store struct {
	path string
	bus  *event.Bus
}

// NewStore creates a Store persisting at path and broadcasting on bus.
func NewStore(path string, bus *event.Bus) *Store {
	return &Store{path: path, bus: bus}
}

// Stored returns the persisted preference, if present and valid.
func (s *Store) Stored() (Preference, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	if !Valid(v) {
		return "", false
	}
	return Preference(v), true
}

// Resolve returns the stored preference when present, otherwise derives one
// from the terminal background, defaulting to dark. Resolving never
// persists the derived value.
func (s *Store) Resolve() Preference {
	if p, ok := s.Stored(); ok {
		return p
	}
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Set persists the preference, then publishes it on the theme channel. The
// write lands before the broadcast so listeners re-reading the store see
// the new value.
func (s *Store) Set(p Preference) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(p), 0600); err != nil {
		return err
	}
	if s.bus != nil {
		s.bus.Publish(event.ThemeChanged, string(p))
	}
	return nil
}
