package plugin

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do/v2"
	"go.uber.org/zap"

	"github.com/modring/go-modring-framework/hook"
	"github.com/modring/go-modring-framework/logger"
)

// Plugin is implemented by loadable modules. Enable receives a Host
// scoped to the plugin; everything registered through it is removed
// automatically on Disable.
type Plugin interface {
	Manifest() Manifest
	Enable(ctx context.Context, host *Host) error
	Disable(ctx context.Context) error
}

// Instance is a loaded plugin plus its runtime state.
type Instance struct {
	ID       uuid.UUID
	Manifest Manifest

	plugin Plugin
	host   *Host

	mu          sync.RWMutex
	enabled     bool
	enabledAt   time.Time
	enableOrder uint64 // sequence of the last Enable, for shutdown ordering
}

// Enabled reports whether the plugin is currently active.
func (i *Instance) Enabled() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.enabled
}

// EnabledAt returns when the plugin was last enabled (zero when it
// never was).
func (i *Instance) EnabledAt() time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.enabledAt
}

func (i *Instance) setEnabled(order uint64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.enabled = true
	i.enabledAt = time.Now()
	i.enableOrder = order
}

func (i *Instance) setDisabled() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.enabled = false
}

// Manager loads, enables and disables plugins over a shared hook
// registry. All methods are safe for concurrent use.
type Manager struct {
	hooks    *hook.Registry
	services do.Injector
	logger   *logger.CtxZapLogger

	mu        sync.RWMutex
	plugins   map[string]*Instance
	enableSeq uint64
}

// NewManager creates a manager dispatching registrations to hooks.
func NewManager(hooks *hook.Registry, log *logger.CtxZapLogger) *Manager {
	if log == nil {
		log = logger.GetLogger("modring")
	}
	return &Manager{
		hooks:    hooks,
		services: do.New(),
		logger:   log,
		plugins:  make(map[string]*Instance),
	}
}

// Load validates the plugin's manifest and registers it, disabled.
func (m *Manager) Load(ctx context.Context, p Plugin) (*Instance, error) {
	manifest := p.Manifest()
	if err := checkManifest(manifest); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[manifest.Name]; ok {
		return nil, ErrAlreadyLoaded.WithData("plugin", manifest.Name)
	}

	inst := &Instance{
		ID:       uuid.New(),
		Manifest: manifest,
		plugin:   p,
	}
	m.plugins[manifest.Name] = inst

	m.logger.InfoCtx(ctx, "plugin loaded",
		zap.String("plugin", manifest.Name),
		zap.String("version", manifest.Version),
		zap.String("instance_id", inst.ID.String()))
	return inst, nil
}

// Enable activates a loaded plugin. On failure everything the plugin
// managed to register is torn down again.
func (m *Manager) Enable(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.plugins[name]
	if !ok {
		return ErrNotFound.WithData("plugin", name)
	}
	if inst.Enabled() {
		return ErrAlreadyEnabled.WithData("plugin", name)
	}

	host := newHost(m.hooks, m.services)
	if err := inst.plugin.Enable(ctx, host); err != nil {
		host.teardown()
		return ErrEnableFailed.WithData("plugin", name).Wrap(err)
	}

	inst.host = host
	m.enableSeq++
	inst.setEnabled(m.enableSeq)

	m.logger.InfoCtx(ctx, "plugin enabled",
		zap.String("plugin", name),
		zap.String("version", inst.Manifest.Version))
	return nil
}

// Disable deactivates a plugin and removes its hook registrations.
func (m *Manager) Disable(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.plugins[name]
	if !ok {
		return ErrNotFound.WithData("plugin", name)
	}
	if !inst.Enabled() {
		return ErrNotEnabled.WithData("plugin", name)
	}

	inst.host.teardown()
	inst.host = nil
	inst.setDisabled()

	if err := inst.plugin.Disable(ctx); err != nil {
		m.logger.WarnCtx(ctx, "plugin disable reported error",
			zap.String("plugin", name),
			zap.Error(err))
	}

	m.logger.InfoCtx(ctx, "plugin disabled", zap.String("plugin", name))
	return nil
}

// DisableAll disables every enabled plugin in reverse enable order,
// so later plugins come down before the ones they may depend on.
// Used at shutdown.
func (m *Manager) DisableAll(ctx context.Context) {
	for _, name := range m.enabledNamesNewestFirst() {
		if err := m.Disable(ctx, name); err != nil {
			m.logger.WarnCtx(ctx, "plugin shutdown disable failed",
				zap.String("plugin", name),
				zap.Error(err))
		}
	}
}

func (m *Manager) enabledNamesNewestFirst() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type entry struct {
		name  string
		order uint64
	}
	entries := make([]entry, 0, len(m.plugins))
	for name, inst := range m.plugins {
		inst.mu.RLock()
		enabled, order := inst.enabled, inst.enableOrder
		inst.mu.RUnlock()
		if enabled {
			entries = append(entries, entry{name, order})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order > entries[j].order
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Get returns a loaded plugin instance by name.
func (m *Manager) Get(name string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.plugins[name]
	return inst, ok
}

// List returns all loaded instances sorted by plugin name.
func (m *Manager) List() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Instance, 0, len(m.plugins))
	for _, inst := range m.plugins {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Manifest.Name < out[j].Manifest.Name
	})
	return out
}

// Services returns the shared container plugins publish services into.
func (m *Manager) Services() do.Injector {
	return m.services
}
