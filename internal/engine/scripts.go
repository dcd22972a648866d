package engine

import (
	"fmt"
	"sort"
	"sync"
)

// ScriptFactory creates a Component from the props of a scene file entry.
type ScriptFactory func(props map[string]any) (Component, error)

// Registry maps component type names used in scene files to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ScriptFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]ScriptFactory{}}
}

// DefaultRegistry is used by scene loading
// when no registry is configured.
var DefaultRegistry = NewRegistry()

// Register adds a named factory. Registering a name twice panics.
func (r *Registry) Register(name string, factory ScriptFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	r.factories[name] = factory
}

// Create looks up a registered factory by name and builds a component.
// The boolean is false when no factory is registered under name.
func (r *Registry) Create(name string, props map[string]any) (Component, bool, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if props == nil {
		props = map[string]any{}
	}
	c, err := factory(props)
	if err != nil {
		return nil, true, fmt.Errorf("create %s: %w", name, err)
	}
	return c, true, nil
}

// Names returns a sorted list of all registered names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
