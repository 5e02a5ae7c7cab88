package resources

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the managed resource descriptors keyed by name.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: map[string]Descriptor{}}
}

// DefaultRegistry builds a registry with the seven managed resources.
// newsletterToken is the bearer token the newsletter backend expects; the
// remaining resources authenticate with the shared session cookie.
func DefaultRegistry(newsletterToken string) (*Registry, error) {
	registry := NewRegistry()
	for _, descriptor := range []Descriptor{
		jobsDescriptor(),
		servicesDescriptor(),
		faqsDescriptor(),
		applicationsDescriptor(),
		galleryDescriptor(),
		videosDescriptor(),
		newsletterDescriptor(newsletterToken),
	} {
		if err := registry.Register(descriptor); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register validates and admits a descriptor. Names are unique.
func (r *Registry) Register(descriptor Descriptor) error {
	name := strings.ToLower(strings.TrimSpace(descriptor.Name))
	if name == "" {
		return ErrNameRequired
	}
	descriptor.Name = name
	if err := descriptor.Validate(); err != nil {
		return fmt.Errorf("resources: descriptor %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.descriptors[name] = descriptor
	return nil
}

// Get returns the named descriptor.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.descriptors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return descriptor, nil
}

// Names lists registered resources in stable order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
