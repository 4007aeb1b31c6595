package transcription

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a backend from configuration.
type Factory func(cfg Config) (Provider, error)

// Registry manages named backend factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register registers a named factory. A later registration replaces an earlier one.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates the backend named by cfg.Backend.
func (r *Registry) Create(cfg Config) (Provider, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Backend]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("transcription backend %q not registered (available: %v)", cfg.Backend, r.List())
	}
	return factory(cfg)
}

// List returns sorted names of all registered factories.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
