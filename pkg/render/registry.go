package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry keeps renderers by name. Names are matched case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its Name. Duplicates are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	key := normalizeName(renderer.Name())
	if key == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[key]; exists {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.renderers[key] = renderer
	return nil
}

// Replace registers renderer, overwriting any renderer with the same name.
func (r *Registry) Replace(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	key := normalizeName(renderer.Name())
	if key == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[key] = renderer
	return nil
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	key := normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found (available: %s)", key, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// Names lists registered renderer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
