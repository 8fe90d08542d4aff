package theme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devbase/internal/event"
	"devbase/internal/theme"
)

func TestToggleIsAnInvolution(t *testing.T) {
	assert.Equal(t, theme.Light, theme.Toggle(theme.Dark))
	assert.Equal(t, theme.Dark, theme.Toggle(theme.Light))

	for _, p := range []theme.Preference{theme.Dark, theme.Light} {
		assert.Equal(t, p, theme.Toggle(theme.Toggle(p)))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, theme.Valid("dark"))
	assert.True(t, theme.Valid("light"))
	assert.False(t, theme.Valid("Dark"))
	assert.False(t, theme.Valid("solarized"))
	assert.False(t, theme.Valid(""))
}

func themePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "theme")
}

func TestStoredRejectsInvalidValues(t *testing.T) {
	path := themePath(t)
	store := theme.NewStore(path, event.NewBus())

	_, ok := store.Stored()
	assert.False(t, ok, "missing file is absent")

	require.NoError(t, os.WriteFile(path, []byte("blue"), 0600))
	_, ok = store.Stored()
	assert.False(t, ok, "unknown value is treated as absent")

	require.NoError(t, os.WriteFile(path, []byte(" dark \n"), 0600))
	p, ok := store.Stored()
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, p)
}

func TestResolvePrefersStored(t *testing.T) {
	store := theme.NewStore(themePath(t), event.NewBus())
	require.NoError(t, store.Set(theme.Light))
	assert.Equal(t, theme.Light, store.Resolve())
}

func TestResolveFallbackIsAlwaysValid(t *testing.T) {
	// With nothing stored, Resolve derives from the environment; whatever it
	// picks must be one of the two closed values, and must not persist.
	path := themePath(t)
	store := theme.NewStore(path, event.NewBus())

	assert.True(t, theme.Valid(string(store.Resolve())))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "resolving must not write the derived value")
}

func TestSetPersistsThenBroadcasts(t *testing.T) {
	path := themePath(t)
	bus := event.NewBus()
	store := theme.NewStore(path, bus)

	var payloads []string
	bus.Subscribe(event.ThemeChanged, func(p string) {
		payloads = append(payloads, p)

		// The write lands before the broadcast: a listener re-reading the
		// store during delivery already sees the new value.
		stored, ok := store.Stored()
		assert.True(t, ok)
		assert.Equal(t, p, string(stored))
	})

	require.NoError(t, store.Set(theme.Light))
	assert.Equal(t, []string{"light"}, payloads)

	require.NoError(t, store.Set(theme.Dark))
	assert.Equal(t, []string{"light", "dark"}, payloads)
}
