package banlist

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/registry"
)

// Component owns the ban store, the periodic snapshot refresh, and the
// built-in listeners that enforce and record bans.
type Component struct {
	config     Config
	client     *redis.Client
	store      Store
	snapshot   *Snapshot
	refresher  *Refresher
	scheduler  gocron.Scheduler
	gate       *LoginGate
	recorder   *Recorder
	components *registry.Registry
	logger     *logger.CtxZapLogger
}

// NewComponent creates the banlist component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentBanlist
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		component.ComponentHook,
	}
}

// SetRegistry receives the component registry (called by the host).
func (c *Component) SetRegistry(r *registry.Registry) {
	c.components = r
}

// Init loads configuration and builds the store.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("modring")

	c.config = DefaultConfig()
	if err := loader.Unmarshal("banlist", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "using default banlist configuration")
	}
	c.config.ApplyDefaults()
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("banlist config invalid: %w", err)
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "banlist component disabled")
		return nil
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:         c.config.Redis.Addr,
		Password:     c.config.Redis.Password,
		DB:           c.config.Redis.DB,
		PoolSize:     c.config.Redis.PoolSize,
		MaxRetries:   c.config.Redis.MaxRetries,
		DialTimeout:  c.config.Redis.DialTimeout,
		ReadTimeout:  c.config.Redis.ReadTimeout,
		WriteTimeout: c.config.Redis.WriteTimeout,
	})

	c.store = NewRedisStore(c.client, c.config.KeyPrefix)
	c.snapshot = NewSnapshot()
	c.refresher = NewRefresher(c.store, c.snapshot)
	c.gate = NewLoginGate(c.snapshot)
	c.recorder = NewRecorder(c.store, c.refresher)

	c.logger.InfoCtx(ctx, "banlist component initialized",
		zap.String("addr", c.config.Redis.Addr),
		zap.Duration("refresh_interval", c.config.RefreshInterval))
	return nil
}

// Start connects to Redis, loads the first snapshot, schedules the
// periodic refresh and registers the built-in listeners.
func (c *Component) Start(ctx context.Context) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("banlist redis ping failed: %w", err)
	}

	if err := c.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("initial banlist refresh failed: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create banlist scheduler failed: %w", err)
	}
	c.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(c.config.RefreshInterval),
		gocron.NewTask(func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), c.config.RefreshInterval)
			defer cancel()
			if err := c.refresher.Refresh(refreshCtx); err != nil {
				c.logger.ErrorCtx(refreshCtx, "banlist refresh failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule banlist refresh failed: %w", err)
	}
	scheduler.Start()

	if err := c.registerListeners(ctx); err != nil {
		return err
	}

	names, ips := c.snapshot.Size()
	c.logger.InfoCtx(ctx, "banlist component started",
		zap.Int("name_bans", names),
		zap.Int("ip_bans", ips))
	return nil
}

func (c *Component) registerListeners(ctx context.Context) error {
	if c.components == nil {
		return nil
	}
	comp, ok := c.components.Get(component.ComponentHook)
	if !ok {
		return nil
	}
	hookComp, ok := comp.(*hook.Component)
	if !ok || !hookComp.IsEnabled() {
		return nil
	}

	if err := hookComp.Hooks().Register(c.gate, hook.PriorityCritical); err != nil {
		return fmt.Errorf("register login gate failed: %w", err)
	}
	if err := hookComp.Hooks().Register(c.recorder, hook.PriorityLow); err != nil {
		return fmt.Errorf("register ban recorder failed: %w", err)
	}

	c.logger.DebugCtx(ctx, "banlist listeners registered")
	return nil
}

// Stop shuts the scheduler down and closes the store.
func (c *Component) Stop(ctx context.Context) error {
	if c.scheduler != nil {
		if err := c.scheduler.Shutdown(); err != nil {
			c.logger.ErrorCtx(ctx, "shutdown banlist scheduler failed", zap.Error(err))
		}
		c.scheduler = nil
	}

	if c.components != nil {
		if comp, ok := c.components.Get(component.ComponentHook); ok {
			if hookComp, ok := comp.(*hook.Component); ok && hookComp.IsEnabled() {
				hookComp.Hooks().Unregister(c.gate)
				hookComp.Hooks().Unregister(c.recorder)
			}
		}
	}

	if c.client != nil {
		if err := c.client.Close(); err != nil {
			return fmt.Errorf("close banlist redis failed: %w", err)
		}
		c.client = nil
		c.logger.InfoCtx(ctx, "banlist component stopped")
	}
	return nil
}

// Store returns the ban store; nil when disabled.
func (c *Component) Store() Store {
	return c.store
}

// Snapshot returns the in-memory snapshot; nil when disabled.
func (c *Component) Snapshot() *Snapshot {
	return c.snapshot
}

// Refresh forces a snapshot reload outside the schedule.
func (c *Component) Refresh(ctx context.Context) error {
	if c.refresher == nil {
		return nil
	}
	return c.refresher.Refresh(ctx)
}

// GetHealthChecker exposes the Redis connection health check.
func (c *Component) GetHealthChecker() component.HealthChecker {
	if c.client == nil {
		return nil
	}
	return &healthChecker{client: c.client}
}

type healthChecker struct {
	client *redis.Client
}

func (h *healthChecker) Name() string {
	return "banlist"
}

func (h *healthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
