package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/infrastructure/llm"
)

func newAdapter(name string) *llm.MockAdapter {
	return &llm.MockAdapter{Name: name}
}

func TestResolveByName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("alpha")
	registry.Register(newAdapter("alpha"))
	registry.Register(newAdapter("beta"))

	adapter, err := registry.Resolve("beta")
	require.NoError(t, err)
	assert.Equal(t, "beta", adapter.Descriptor().Name)
}

func TestResolveEmptyNameUsesDefault(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("alpha")
	registry.Register(newAdapter("alpha"))
	registry.Register(newAdapter("beta"))

	adapter, err := registry.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "alpha", adapter.Descriptor().Name)
	assert.Equal(t, "alpha", registry.DefaultName())
}

func TestResolveUnknownProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("alpha")
	registry.Register(newAdapter("alpha"))

	_, err := registry.Resolve("carol")
	require.Error(t, err)

	var adapterErr *domain.AdapterError
	require.True(t, errors.As(err, &adapterErr))
	assert.Equal(t, domain.ErrUnknownProvider, adapterErr.Kind)
	assert.Contains(t, adapterErr.Error(), "carol")
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("c")
	registry.Register(newAdapter("c"))
	registry.Register(newAdapter("a"))
	registry.Register(newAdapter("b"))

	descriptors := registry.List()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "c", descriptors[0].Name)
	assert.Equal(t, "a", descriptors[1].Name)
	assert.Equal(t, "b", descriptors[2].Name)
}

func TestRegisterReplacesByName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("alpha")
	registry.Register(newAdapter("alpha"))
	registry.Register(newAdapter("alpha"))

	assert.Len(t, registry.List(), 1)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("up")
	registry.Register(&llm.MockAdapter{Name: "up"})
	registry.Register(&llm.MockAdapter{
		Name: "down",
		Fail: domain.NewAdapterError(domain.ErrUpstream, "backend offline"),
	})

	statuses := registry.HealthCheck(context.Background())
	require.Len(t, statuses, 2)
	assert.True(t, statuses["up"])
	assert.False(t, statuses["down"])
}
