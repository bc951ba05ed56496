package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/registry"
)

// ===== MetricsRegistry tests =====

func newTestRegistry(t *testing.T) *MetricsRegistry {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { mp.Shutdown(context.Background()) })
	return NewMetricsRegistry(mp, WithNamespace("test"))
}

func TestMetricsRegistry_Register(t *testing.T) {
	r := newTestRegistry(t)

	m := hook.NewMetrics(hook.MetricsConfig{Enabled: true})
	require.NoError(t, r.Register(m))

	assert.Equal(t, 1, r.GetProviderCount())
	assert.True(t, m.IsRegistered())
}

func TestMetricsRegistry_Register_Duplicate(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.Register(hook.NewMetrics(hook.MetricsConfig{Enabled: true})))
	err := r.Register(hook.NewMetrics(hook.MetricsConfig{Enabled: true}))
	assert.ErrorContains(t, err, "already registered")
}

func TestMetricsRegistry_Register_DisabledProviderSkipped(t *testing.T) {
	r := newTestRegistry(t)

	m := hook.NewMetrics(hook.MetricsConfig{Enabled: false})
	require.NoError(t, r.Register(m))

	assert.Equal(t, 0, r.GetProviderCount())
	assert.False(t, m.IsRegistered())
}

func TestMetricsRegistry_Register_Nil(t *testing.T) {
	r := newTestRegistry(t)
	assert.Error(t, r.Register(nil))
}

func TestMetricsRegistry_GetMeter_Cached(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, r.GetMeter("hook"), r.GetMeter("hook"))
}

// ===== Component tests =====

type stubLoader struct {
	cfg Config
}

func (s *stubLoader) Get(key string) interface{} { return nil }
func (s *stubLoader) Unmarshal(key string, v interface{}) error {
	if cfg, ok := v.(*Config); ok {
		*cfg = s.cfg
	}
	return nil
}
func (s *stubLoader) GetString(key string) string { return "" }
func (s *stubLoader) GetInt(key string) int       { return 0 }
func (s *stubLoader) GetBool(key string) bool     { return false }
func (s *stubLoader) IsSet(key string) bool       { return key == "telemetry" }

func TestComponent_Name(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, component.ComponentTelemetry, c.Name())
}

func TestComponent_InitStartStop(t *testing.T) {
	reg := registry.NewRegistry()
	telemetryComp := NewComponent()
	hookComp := hook.NewComponent()
	require.NoError(t, reg.Register(hookComp))
	require.NoError(t, reg.Register(telemetryComp))

	loader := &stubLoader{cfg: DefaultConfig()}
	require.NoError(t, telemetryComp.Init(context.Background(), loader))
	require.NotNil(t, telemetryComp.Metrics())
	assert.True(t, telemetryComp.IsEnabled())

	require.NoError(t, telemetryComp.Start(context.Background()))
	require.NoError(t, telemetryComp.Stop(context.Background()))
}

func TestComponent_Disabled(t *testing.T) {
	c := NewComponent()
	loader := &stubLoader{cfg: Config{Enabled: false}}

	require.NoError(t, c.Init(context.Background(), loader))
	assert.False(t, c.IsEnabled())
	assert.Nil(t, c.Metrics())
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
}
