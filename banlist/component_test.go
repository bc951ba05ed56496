package banlist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modring/go-modring-framework/component"
)

type stubLoader struct {
	cfg Config
}

func (s *stubLoader) Get(key string) interface{} { return nil }
func (s *stubLoader) Unmarshal(key string, v interface{}) error {
	*(v.(*Config)) = s.cfg
	return nil
}
func (s *stubLoader) GetString(key string) string { return "" }
func (s *stubLoader) GetInt(key string) int       { return 0 }
func (s *stubLoader) GetBool(key string) bool     { return false }
func (s *stubLoader) IsSet(key string) bool       { return false }

// ===== Config tests =====

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Enabled: true, Redis: RedisConfig{Addr: "localhost:6379"}}
	cfg.ApplyDefaults()

	assert.Equal(t, "modring:banlist", cfg.KeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Enabled: true, Redis: RedisConfig{Addr: "localhost:6379"}}
	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())

	assert.NoError(t, (&Config{Enabled: false}).Validate(), "disabled skips validation")

	noAddr := Config{Enabled: true}
	noAddr.ApplyDefaults()
	assert.Error(t, noAddr.Validate())

	tooFast := Config{Enabled: true, Redis: RedisConfig{Addr: "x"}, RefreshInterval: 100 * time.Millisecond}
	assert.Error(t, tooFast.Validate())
}

// ===== Component tests =====

func TestComponent_Name(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, component.ComponentBanlist, c.Name())
}

func TestComponent_DependsOn(t *testing.T) {
	c := NewComponent()
	assert.Contains(t, c.DependsOn(), component.ComponentHook)
}

func TestComponent_Lifecycle(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := NewComponent()
	loader := &stubLoader{cfg: Config{
		Enabled:         true,
		RefreshInterval: 2 * time.Second,
		Redis:           RedisConfig{Addr: mr.Addr()},
	}}

	ctx := context.Background()
	require.NoError(t, c.Init(ctx, loader))
	require.NoError(t, c.Start(ctx))
	defer c.Stop(ctx)

	require.NotNil(t, c.Store())
	require.NotNil(t, c.Snapshot())

	// A ban written behind the component's back appears after Refresh.
	require.NoError(t, c.Store().BanName(ctx, "mallory", "griefing", 0))
	require.NoError(t, c.Refresh(ctx))

	reason, ok := c.Snapshot().NameBanned("mallory")
	require.True(t, ok)
	assert.Equal(t, "griefing", reason)

	hc := c.GetHealthChecker()
	require.NotNil(t, hc)
	assert.Equal(t, "banlist", hc.Name())
	assert.NoError(t, hc.Check(ctx))
}

func TestComponent_Disabled(t *testing.T) {
	c := NewComponent()
	loader := &stubLoader{cfg: Config{Enabled: false}}

	ctx := context.Background()
	require.NoError(t, c.Init(ctx, loader))
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Stop(ctx))

	assert.Nil(t, c.Store())
	assert.Nil(t, c.GetHealthChecker())
}

func TestComponent_Start_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c := NewComponent()
	loader := &stubLoader{cfg: Config{
		Enabled: true,
		Redis:   RedisConfig{Addr: addr},
	}}

	ctx := context.Background()
	require.NoError(t, c.Init(ctx, loader))
	assert.Error(t, c.Start(ctx))
}
