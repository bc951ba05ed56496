package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/registry"
)

// stubLoader serves the hook and plugin config sections.
type stubLoader struct {
	hookCfg   hook.Config
	pluginCfg Config
}

func (s *stubLoader) Get(key string) interface{} { return nil }
func (s *stubLoader) Unmarshal(key string, v interface{}) error {
	switch key {
	case "hook":
		*(v.(*hook.Config)) = s.hookCfg
	case "plugin":
		*(v.(*Config)) = s.pluginCfg
	}
	return nil
}
func (s *stubLoader) GetString(key string) string { return "" }
func (s *stubLoader) GetInt(key string) int       { return 0 }
func (s *stubLoader) GetBool(key string) bool     { return false }
func (s *stubLoader) IsSet(key string) bool       { return false }

func defaultStubLoader() *stubLoader {
	return &stubLoader{
		hookCfg:   hook.DefaultConfig(),
		pluginCfg: DefaultConfig(),
	}
}

// newTestComponents wires a hook component and a plugin component the
// way the application registry does.
func newTestComponents(t *testing.T, loader *stubLoader) (*Component, *hook.Component) {
	t.Helper()

	reg := registry.NewRegistry()
	hookComp := hook.NewComponent()
	pluginComp := NewComponent()
	require.NoError(t, reg.Register(hookComp))
	require.NoError(t, reg.Register(pluginComp))

	require.NoError(t, hookComp.Init(context.Background(), loader))
	t.Cleanup(func() { hookComp.Stop(context.Background()) })
	return pluginComp, hookComp
}

// ===== Component tests =====

func TestComponent_Name(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, component.ComponentPlugin, c.Name())
}

func TestComponent_DependsOn(t *testing.T) {
	c := NewComponent()
	deps := c.DependsOn()
	assert.Contains(t, deps, component.ComponentConfig)
	assert.Contains(t, deps, component.ComponentLogger)
	assert.Contains(t, deps, component.ComponentHook)
}

func TestComponent_Init(t *testing.T) {
	loader := defaultStubLoader()
	pluginComp, hookComp := newTestComponents(t, loader)

	require.NoError(t, pluginComp.Init(context.Background(), loader))

	assert.True(t, pluginComp.IsEnabled())
	require.NotNil(t, pluginComp.Manager())

	// The manager registers plugin listeners on the shared hook
	// registry.
	p := newTestPlugin("chat-filter")
	_, err := pluginComp.Manager().Load(context.Background(), p)
	require.NoError(t, err)
	require.NoError(t, pluginComp.Manager().Enable(context.Background(), "chat-filter"))
	assert.Equal(t, 1, hookComp.Hooks().ListenerCount(hook.KindChat))
}

func TestComponent_Init_Disabled(t *testing.T) {
	loader := defaultStubLoader()
	loader.pluginCfg.Enabled = false
	pluginComp, _ := newTestComponents(t, loader)

	require.NoError(t, pluginComp.Init(context.Background(), loader))

	assert.False(t, pluginComp.IsEnabled())
	assert.Nil(t, pluginComp.Manager())
}

func TestComponent_Init_RequiresHookComponent(t *testing.T) {
	reg := registry.NewRegistry()
	pluginComp := NewComponent()
	require.NoError(t, reg.Register(pluginComp))

	err := pluginComp.Init(context.Background(), defaultStubLoader())
	assert.Error(t, err)
}

func TestComponent_Init_RequiresEnabledHook(t *testing.T) {
	loader := defaultStubLoader()
	loader.hookCfg.Enabled = false
	pluginComp, _ := newTestComponents(t, loader)

	err := pluginComp.Init(context.Background(), loader)
	assert.Error(t, err)
}

func TestComponent_Stop_DisablesPlugins(t *testing.T) {
	loader := defaultStubLoader()
	pluginComp, hookComp := newTestComponents(t, loader)

	require.NoError(t, pluginComp.Init(context.Background(), loader))
	require.NoError(t, pluginComp.Start(context.Background()))

	p := newTestPlugin("chat-filter")
	_, err := pluginComp.Manager().Load(context.Background(), p)
	require.NoError(t, err)
	require.NoError(t, pluginComp.Manager().Enable(context.Background(), "chat-filter"))

	require.NoError(t, pluginComp.Stop(context.Background()))

	assert.True(t, p.disabled)
	assert.Equal(t, 0, hookComp.Hooks().ListenerCount(hook.KindChat))
}
