package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds registered commands keyed by name and alias.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary []Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if _, taken := r.byName[n]; taken {
			return fmt.Errorf("command name already registered: %s", n)
		}
	}

	for _, n := range names {
		r.byName[n] = c
	}
	r.primary = append(r.primary, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns every registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := slices.Clone(r.primary)
	slices.SortFunc(all, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return all
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
// It panics on a duplicate name, which is a programming error.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
