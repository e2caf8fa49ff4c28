package plugin

import (
	"slices"
	"sync"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
)

// Registry holds plugins in registration order. Hooks run in that order, so a
// localizer registered before a sitemap hook sees pages first.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends p. Names are unique: a second plugin with the same name is
// rejected regardless of its version.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return foundationerrors.ValidationError("cannot register nil plugin").Build()
	}

	md := p.Metadata()
	if err := md.Validate(); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid plugin metadata").
			WithContext("plugin", md.Name).
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.index(md.Name); idx >= 0 {
		return foundationerrors.ValidationError("plugin already registered").
			WithContext("plugin", md.Name).
			WithContext("registered", r.plugins[idx].Metadata().Version).
			WithContext("version", md.Version).
			Build()
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.index(name); idx >= 0 {
		return r.plugins[idx], true
	}
	return nil, false
}

// List returns a snapshot of all plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.plugins)
}

// Hooks returns the registered page hooks in registration order. Plugins that
// do not implement PageHook are skipped.
func (r *Registry) Hooks() []PageHook {
	var hooks []PageHook
	for _, p := range r.List() {
		if hook, ok := p.(PageHook); ok {
			hooks = append(hooks, hook)
		}
	}
	return hooks
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// index must be called with r.mu held.
func (r *Registry) index(name string) int {
	return slices.IndexFunc(r.plugins, func(p Plugin) bool {
		return p.Metadata().Name == name
	})
}
