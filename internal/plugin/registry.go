package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrAlreadyRegistered is returned by Register when the name is taken.
var ErrAlreadyRegistered = errors.New("plugin already registered")

// Registry maps identifiers to plugins so declarations can refer to them by name.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error wrapping ErrAlreadyRegistered if the name is taken.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid plugin: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, p.Name)
	}

	r.plugins[p.Name] = p
	return nil
}

// Get retrieves a plugin by name. The error is a *NotFoundError when no plugin
// carries that name.
func (r *Registry) Get(name string) (*Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return p, nil
}

// List returns all registered plugins sorted by name.
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[name]
	return ok
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(r.plugins, name)
	return nil
}

// Clear removes all plugins from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plugins = make(map[string]*Plugin)
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin to the global registry.
func Register(p *Plugin) error {
	return globalRegistry.Register(p)
}

// Get retrieves a plugin from the global registry.
func Get(name string) (*Plugin, error) {
	return globalRegistry.Get(name)
}

// List returns all plugins from the global registry.
func List() []*Plugin {
	return globalRegistry.List()
}
