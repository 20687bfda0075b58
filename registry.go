package flagset

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry maps collection names to built collections, so code that only
// holds a name — a serialization adapter decoding a tagged payload, a CLI
// resolving a user-supplied collection — can find the descriptor. Collections
// themselves stay lock-free; the registry guards its map for concurrent
// registration and lookup.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Collection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Collection)}
}

// Register adds a collection under its name. Registering a second collection
// with the same name fails with an error wrapping ErrDuplicateName, unless
// it is the same collection (idempotent).
func (r *Registry) Register(c *Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[c.name]; ok {
		if existing == c {
			return nil
		}
		return errors.Wrapf(ErrDuplicateName, "collection %q already registered", c.name)
	}
	r.byName[c.name] = c
	return nil
}

// Lookup returns the collection registered under the given name.
func (r *Registry) Lookup(name string) (*Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Names returns the registered collection names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a collection to the package default registry.
func Register(c *Collection) error {
	return defaultRegistry.Register(c)
}

// Lookup finds a collection in the package default registry.
func Lookup(name string) (*Collection, bool) {
	return defaultRegistry.Lookup(name)
}
