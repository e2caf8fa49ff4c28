package plugin

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
)

type mockHook struct {
	metadata PluginMetadata
}

func (m *mockHook) Metadata() PluginMetadata { return m.metadata }

func (m *mockHook) OnCreatePage(context.Context, *PageContext) error { return nil }

// inertPlugin only carries metadata.
type inertPlugin struct {
	metadata PluginMetadata
}

func (r *inertPlugin) Metadata() PluginMetadata { return r.metadata }

func newMockHook(name, version string) Plugin {
	return &mockHook{metadata: PluginMetadata{Name: name, Version: version, Type: PluginTypePage}}
}

func names(plugins []Plugin) []string {
	out := make([]string, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, p.Metadata().Name)
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(newMockHook("i18n", "v1.0.0")))

	p, ok := registry.Lookup("i18n")
	require.True(t, ok)
	assert.Equal(t, "v1.0.0", p.Metadata().Version)

	_, ok = registry.Lookup("sitemap")
	assert.False(t, ok)
}

func TestRegistry_RejectsDuplicateName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newMockHook("i18n", "v1.0.0")))

	err := registry.Register(newMockHook("i18n", "v2.0.0"))

	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		plugin Plugin
	}{
		{"nil", nil},
		{"missing name", &mockHook{metadata: PluginMetadata{Version: "v1.0.0", Type: PluginTypePage}}},
		{"missing version", &mockHook{metadata: PluginMetadata{Name: "i18n", Type: PluginTypePage}}},
		{"unknown type", &mockHook{metadata: PluginMetadata{Name: "i18n", Version: "v1.0.0", Type: "theme"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			err := registry.Register(tt.plugin)
			require.Error(t, err)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
			assert.Zero(t, registry.Len())
		})
	}
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newMockHook("zeta", "v1.0.0")))
	require.NoError(t, registry.Register(newMockHook("alpha", "v2.0.0")))
	require.NoError(t, registry.Register(newMockHook("mid", "v1.0.0")))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names(registry.List()))
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newMockHook("i18n", "v1.0.0")))

	list := registry.List()
	list[0] = newMockHook("other", "v1.0.0")

	assert.Equal(t, []string{"i18n"}, names(registry.List()))
}

func TestRegistry_HooksSkipPluginsWithoutOnCreatePage(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&inertPlugin{metadata: PluginMetadata{Name: "inert", Version: "v1.0.0", Type: PluginTypePage}}))
	require.NoError(t, registry.Register(newMockHook("i18n", "v1.0.0")))

	hooks := registry.Hooks()

	require.Len(t, hooks, 1)
	assert.Equal(t, "i18n", hooks[0].Metadata().Name)
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, registry.Register(newMockHook(fmt.Sprintf("hook-%d", id), "v1.0.0")))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, registry.Len())
}
