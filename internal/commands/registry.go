package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command names and aliases onto their implementations.
type Registry struct {
	mu sync.RWMutex

	// index holds primary names and aliases side by side; All dedupes by
	// primary name.
	index map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]Command)}
}

// Register adds a command under its name and every alias. All keys are
// checked before any is inserted, so a collision leaves the registry
// unchanged.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if _, taken := r.index[k]; taken {
			return fmt.Errorf("command already registered: %s", k)
		}
	}
	for _, k := range keys {
		r.index[k] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.index[name]
	return c, ok
}

// All returns every registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]Command)
	for _, c := range r.index {
		byName[c.Name()] = c
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]Command, len(names))
	for i, name := range names {
		all[i] = byName[name]
	}
	return all
}

// DefaultRegistry is the process-wide registry commands self-register into
// from their init functions.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry, panicking on a name
// collision. Collisions are programmer errors caught at startup.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
