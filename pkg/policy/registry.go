package policy

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps policy names to constructors so palettes can be rebuilt
// from serialized documents and CLI flags.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]func() Policy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]func() Policy)}
}

// Register adds a policy constructor. An existing name is overwritten.
func (r *Registry) Register(name string, fn func() Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[name] = fn
}

// Lookup returns a fresh policy by name.
func (r *Registry) Lookup(name string) (Policy, error) {
	r.mu.RLock()
	fn, ok := r.policies[name]
	r.mu.RUnlock()

	if !ok {
		return Policy{}, fmt.Errorf("unknown format policy: %s", name)
	}
	return fn(), nil
}

// Names lists the registered policy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register("Default", Default)
	defaultRegistry.Register("Small", Small)
	defaultRegistry.Register("ZScreen", ZScreen)
}

// Lookup resolves a policy name against the built-in registry.
func Lookup(name string) (Policy, error) {
	return defaultRegistry.Lookup(name)
}

// Names lists the built-in policy names.
func Names() []string {
	return defaultRegistry.Names()
}
