package plugin

import (
	"fmt"
	"sync"

	"tracker-api/src/internal/constants"
	"tracker-api/src/internal/model"
)

// Registry holds all registered plugins, keyed by slug. Plugins are
// registered once at startup (from the shipped catalog plus any code
// registrations) and read concurrently by request handlers.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	order   []string
}

// NewRegistry creates an empty plugin registry
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Register adds a plugin to the registry. Slugs must be unique.
func (r *Registry) Register(p *Plugin) error {
	if p == nil || p.Slug == "" {
		return fmt.Errorf("plugin slug is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[p.Slug]; exists {
		return fmt.Errorf("%w: %s", constants.ErrPluginSlugExists, p.Slug)
	}
	r.plugins[p.Slug] = p
	r.order = append(r.order, p.Slug)
	return nil
}

// Get looks up a plugin by slug
func (r *Registry) Get(slug string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[slug]
	return p, ok
}

// All returns every registered plugin in registration order
func (r *Registry) All() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.order))
	for _, slug := range r.order {
		result = append(result, r.plugins[slug])
	}
	return result
}

// SetHook attaches a permission hook to an already registered plugin.
// Catalog-loaded plugins get their hooks wired through this after startup.
func (r *Registry) SetHook(slug string, hook PermissionHook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plugins[slug]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrPluginNotFound, slug)
	}
	p.HasPerm = hook
	return nil
}

// FirstPerm consults every plugin's permission hook in registration order
// and returns the first non-abstaining answer, or nil when every plugin
// abstains.
func (r *Registry) FirstPerm(userID string, scopes []string, action string, project *model.Project) *bool {
	for _, p := range r.All() {
		if p.HasPerm == nil {
			continue
		}
		if result := p.HasPerm(userID, scopes, action, project); result != nil {
			return result
		}
	}
	return nil
}
