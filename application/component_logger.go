package application

import (
	"context"

	"github.com/modring/go-modring-framework/component"
	"github.com/modring/go-modring-framework/logger"
)

// LoggerComponent initializes the global logger manager from the
// "logger" config section.
type LoggerComponent struct {
	coreLogger *logger.CtxZapLogger
}

// NewLoggerComponent creates the logger component.
func NewLoggerComponent() *LoggerComponent {
	return &LoggerComponent{}
}

// Name returns the component name.
func (l *LoggerComponent) Name() string {
	return component.ComponentLogger
}

// DependsOn returns the component dependencies.
func (l *LoggerComponent) DependsOn() []string {
	return []string{component.ComponentConfig}
}

// Init initializes the manager, keeping defaults when the section is
// absent.
func (l *LoggerComponent) Init(ctx context.Context, loader component.ConfigLoader) error {
	cfg := logger.DefaultManagerConfig()
	if loader.IsSet("logger") {
		if err := loader.Unmarshal("logger", &cfg); err != nil {
			cfg = logger.DefaultManagerConfig()
		}
	}
	logger.InitManager(cfg)
	l.coreLogger = logger.GetLogger("modring")
	return nil
}

// Start is a no-op.
func (l *LoggerComponent) Start(ctx context.Context) error {
	return nil
}

// Stop flushes and closes every module logger.
func (l *LoggerComponent) Stop(ctx context.Context) error {
	if l.coreLogger != nil {
		l.coreLogger.DebugCtx(ctx, "application shut down")
		logger.CloseAll()
	}
	return nil
}

// GetLogger returns the core logger instance.
func (l *LoggerComponent) GetLogger() *logger.CtxZapLogger {
	return l.coreLogger
}
