// Package registry maps provider slugs to lazily constructed provider
// instances. Loaders run on first Get, so an unused provider costs nothing
// and a broken one cannot take the process down at startup.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// Loader constructs a provider instance on demand.
type Loader func() (domain.Provider, error)

type entry struct {
	once     sync.Once
	loader   Loader
	provider domain.Provider
	err      error
}

func (e *entry) load() (domain.Provider, error) {
	e.once.Do(func() {
		e.provider, e.err = e.loader()
		if e.err == nil && e.provider == nil {
			e.err = fmt.Errorf("loader returned nil provider")
		}
	})
	return e.provider, e.err
}

type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register binds a slug to a loader. Later registrations for the same slug
// replace earlier ones, which keeps tests free to swap in fakes.
func (r *Registry) Register(slug string, loader Loader) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" || loader == nil {
		return
	}
	r.mu.Lock()
	r.entries[slug] = &entry{loader: loader}
	r.mu.Unlock()
}

// Get returns the provider for slug, invoking its loader on first use. An
// unknown slug fails with the full sorted slug list to aid debugging.
func (r *Registry) Get(slug string) (domain.Provider, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	r.mu.RLock()
	e, ok := r.entries[slug]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)",
			domain.ErrProviderNotFound, slug, strings.Join(r.Slugs(), ", "))
	}
	provider, err := e.load()
	if err != nil {
		return nil, fmt.Errorf("load provider %q: %w", slug, err)
	}
	return provider, nil
}

// Exists reports whether slug is registered, without loading it.
func (r *Registry) Exists(slug string) bool {
	slug = strings.ToLower(strings.TrimSpace(slug))
	r.mu.RLock()
	_, ok := r.entries[slug]
	r.mu.RUnlock()
	return ok
}

// Slugs returns all registered slugs in sorted order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	slugs := make([]string, 0, len(r.entries))
	for slug := range r.entries {
		slugs = append(slugs, slug)
	}
	r.mu.RUnlock()
	sort.Strings(slugs)
	return slugs
}

// Manifest loads a single provider's manifest.
func (r *Registry) Manifest(slug string) (domain.Manifest, error) {
	provider, err := r.Get(slug)
	if err != nil {
		return domain.Manifest{}, err
	}
	return provider.Manifest(), nil
}

// Manifests loads every registered manifest. Failures are reported per slug
// so one broken provider never hides the rest of the catalog.
func (r *Registry) Manifests() ([]domain.Manifest, map[string]error) {
	manifests := make([]domain.Manifest, 0, len(r.entries))
	failures := make(map[string]error)
	for _, slug := range r.Slugs() {
		manifest, err := r.Manifest(slug)
		if err != nil {
			failures[slug] = err
			continue
		}
		manifests = append(manifests, manifest)
	}
	return manifests, failures
}
