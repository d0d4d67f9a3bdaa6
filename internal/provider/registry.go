package provider

import (
	"context"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

// Registry keeps the mapping from provider names to their adapters. It is
// built once at startup and read-only afterwards, so concurrent reads
// need no synchronization.
type Registry struct {
	adapters    map[string]ports.ProviderAdapter
	order       []string
	defaultName string
}

// NewRegistry builds an empty registry with the given default provider.
func NewRegistry(defaultName string) *Registry {
	return &Registry{
		adapters:    map[string]ports.ProviderAdapter{},
		defaultName: defaultName,
	}
}

// Register adds or replaces an adapter under its descriptor name.
func (r *Registry) Register(adapter ports.ProviderAdapter) {
	name := adapter.Descriptor().Name
	if _, exists := r.adapters[name]; !exists {
		r.order = append(r.order, name)
	}
	r.adapters[name] = adapter
}

// DefaultName returns the provider used when the caller names none.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Resolve returns the adapter for name, falling back to the default
// provider when name is empty.
func (r *Registry) Resolve(name string) (ports.ProviderAdapter, error) {
	if name == "" {
		name = r.defaultName
	}
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, domain.NewAdapterError(domain.ErrUnknownProvider, "provider %q is not registered", name)
}

// List returns the descriptors of all registered providers in
// registration order.
func (r *Registry) List() []domain.ProviderDescriptor {
	descriptors := make([]domain.ProviderDescriptor, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.adapters[name].Descriptor())
	}
	return descriptors
}

// HealthCheck probes every adapter and reports availability per provider.
// Probe failures are recorded, never propagated.
func (r *Registry) HealthCheck(ctx context.Context) map[string]bool {
	statuses := make(map[string]bool, len(r.adapters))
	for name, adapter := range r.adapters {
		statuses[name] = adapter.Healthy(ctx)
	}
	return statuses
}
