// Package application assembles the framework components into a
// runnable host: config, logging, the hook dispatcher, the Kafka
// mirror, the banlist and the plugin manager.
package application

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/banlist"
	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/health"
	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/kafka"
	"github.com/modring/go-modring-framework/logger"
	"github.com/modring/go-modring-framework/plugin"
	"github.com/modring/go-modring-framework/registry"
	"github.com/modring/go-modring-framework/telemetry"
)

// State is the application lifecycle state.
type State int

const (
	StateInit State = iota
	StateSetup
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateSetup:
		return "Setup"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// App owns the component registry and runs the lifecycle: Init and
// Start in dependency order, then Stop in reverse on shutdown.
type App struct {
	components *registry.Registry
	logger     *logger.CtxZapLogger

	configComp *ConfigComponent
	loggerComp *LoggerComponent
	hookComp   *hook.Component
	pluginComp *plugin.Component
	healthComp *health.Component

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	state  State

	version    string
	onSetup    func(*App) error
	onShutdown func(context.Context) error
}

// New creates an application reading configuration from configPath
// (missing file is fine) with env overrides under envPrefix.
func New(configPath, envPrefix string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		components: registry.NewRegistry(),
		configComp: NewConfigComponent(configPath, envPrefix),
		loggerComp: NewLoggerComponent(),
		hookComp:   hook.NewComponent(),
		pluginComp: plugin.NewComponent(),
		healthComp: health.NewComponent(),
		ctx:        ctx,
		cancel:     cancel,
		state:      StateInit,
	}

	app.components.MustRegister(app.configComp)
	app.components.MustRegister(app.loggerComp)
	app.components.MustRegister(telemetry.NewComponent())
	app.components.MustRegister(app.hookComp)
	app.components.MustRegister(kafka.NewComponent())
	app.components.MustRegister(banlist.NewComponent())
	app.components.MustRegister(app.pluginComp)
	app.components.MustRegister(app.healthComp)

	return app
}

// WithVersion records the host version, logged at startup.
func (a *App) WithVersion(version string) *App {
	a.version = version
	return a
}

// OnSetup registers a callback run after all components started.
func (a *App) OnSetup(fn func(*App) error) *App {
	a.onSetup = fn
	return a
}

// OnShutdown registers a callback run before components stop.
func (a *App) OnShutdown(fn func(context.Context) error) *App {
	a.onShutdown = fn
	return a
}

// RegisterComponent adds an extra component before Setup.
func (a *App) RegisterComponent(comp component.Component) error {
	return a.components.Register(comp)
}

// Setup initializes and starts every component in dependency order.
func (a *App) Setup() error {
	a.setState(StateSetup)

	if err := a.components.Init(a.ctx); err != nil {
		return fmt.Errorf("init components: %w", err)
	}

	a.logger = a.loggerComp.GetLogger()
	a.components.SetLogger(a.logger)

	if err := a.components.Start(a.ctx); err != nil {
		return fmt.Errorf("start components: %w", err)
	}

	if a.onSetup != nil {
		if err := a.onSetup(a); err != nil {
			return fmt.Errorf("onSetup failed: %w", err)
		}
	}

	a.setState(StateRunning)
	a.logger.InfoCtx(a.ctx, "application started",
		zap.String("version", a.version))
	return nil
}

// Run sets up, blocks until a shutdown signal and stops everything.
func (a *App) Run() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.WaitShutdown()
	return a.Shutdown(30 * time.Second)
}

// WaitShutdown blocks until SIGINT/SIGTERM or Cancel. A second signal
// forces immediate exit.
func (a *App) WaitShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		a.logger.InfoCtx(a.ctx, "shutdown signal received", zap.String("signal", sig.String()))
		a.cancel()

		go func() {
			sig := <-quit
			a.logger.WarnCtx(context.Background(), "second signal received, forcing exit",
				zap.String("signal", sig.String()))
			os.Exit(1)
		}()

	case <-a.ctx.Done():
	}
}

// Shutdown stops all components in reverse dependency order.
func (a *App) Shutdown(timeout time.Duration) error {
	a.setState(StateStopping)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.onShutdown != nil {
		if err := a.onShutdown(ctx); err != nil && a.logger != nil {
			a.logger.ErrorCtx(ctx, "onShutdown callback failed", zap.Error(err))
		}
	}

	err := a.components.Stop(ctx)
	a.setState(StateStopped)
	return err
}

// Cancel triggers shutdown programmatically.
func (a *App) Cancel() {
	a.cancel()
}

// Context returns the application root context.
func (a *App) Context() context.Context {
	return a.ctx
}

// State returns the lifecycle state.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Components returns the component registry.
func (a *App) Components() *registry.Registry {
	return a.components
}

// Dispatcher returns the hook dispatcher; nil when hooks are disabled.
func (a *App) Dispatcher() *hook.Dispatcher {
	return a.hookComp.Dispatcher()
}

// Hooks returns the listener registry; nil when hooks are disabled.
func (a *App) Hooks() *hook.Registry {
	return a.hookComp.Hooks()
}

// Plugins returns the plugin manager; nil when plugins are disabled.
func (a *App) Plugins() *plugin.Manager {
	return a.pluginComp.Manager()
}

// Health returns the health component.
func (a *App) Health() *health.Component {
	return a.healthComp
}

// ConfigLoader returns the loaded configuration.
func (a *App) ConfigLoader() component.ConfigLoader {
	return a.configComp
}

func (a *App) setState(state State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
}
