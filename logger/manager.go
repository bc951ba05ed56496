package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager owns the per-module logger instances.
type Manager struct {
	baseConfig ManagerConfig
	loggers    map[string]*CtxZapLogger
	writers    map[string][]*lumberjack.Logger // kept for CloseAll
	mu         sync.RWMutex
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// NewManager creates an independent Manager. Zero-valued config fields
// are filled with defaults.
func NewManager(cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		baseConfig: cfg,
		loggers:    make(map[string]*CtxZapLogger),
		writers:    make(map[string][]*lumberjack.Logger),
	}
}

// InitManager initializes the global Manager exactly once.
func InitManager(cfg ManagerConfig) {
	managerOnce.Do(func() {
		globalManager = NewManager(cfg)
	})
}

// GetLogger returns the module's CtxZapLogger, creating it on demand.
func (m *Manager) GetLogger(moduleName string) *CtxZapLogger {
	m.mu.RLock()
	if l, exists := m.loggers[moduleName]; exists {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// double check under write lock
	if l, exists := m.loggers[moduleName]; exists {
		return l
	}

	cfg := m.buildModuleConfig(moduleName)
	zapLogger := m.createLogger(cfg).With(zap.String("module", moduleName))

	ctxLogger := &CtxZapLogger{
		base:   zapLogger.WithOptions(zap.AddCallerSkip(1)),
		module: moduleName,
		config: &m.baseConfig,
	}
	m.loggers[moduleName] = ctxLogger
	return ctxLogger
}

func (m *Manager) buildModuleConfig(moduleName string) Config {
	return Config{
		Level:                m.baseConfig.Level,
		Encoding:             m.baseConfig.Encoding,
		moduleName:           moduleName,
		logDir:               m.baseConfig.BaseLogDir,
		EnableFile:           m.baseConfig.EnableFile,
		EnableConsole:        m.baseConfig.EnableConsole,
		EnableDateInFilename: m.baseConfig.EnableDateInFilename,
		DateFormat:           m.baseConfig.DateFormat,
		MaxSize:              m.baseConfig.MaxSize,
		MaxBackups:           m.baseConfig.MaxBackups,
		MaxAge:               m.baseConfig.MaxAge,
		Compress:             m.baseConfig.Compress,
		EnableCaller:         m.baseConfig.EnableCaller,
		EnableStacktrace:     m.baseConfig.EnableStacktrace,
		StacktraceLevel:      m.baseConfig.StacktraceLevel,
	}
}

func (m *Manager) createLogger(cfg Config) *zap.Logger {
	encoder := createEncoder(cfg)
	var cores []zapcore.Core
	var writers []*lumberjack.Logger

	if cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(
			encoder,
			zapcore.AddSync(os.Stdout),
			ParseLevel(cfg.Level),
		))
	}

	if cfg.EnableFile {
		configuredLevel := ParseLevel(cfg.Level)

		infoWriter, infoLumber := createFileWriter(cfg.getInfoFilePath(), cfg)
		writers = append(writers, infoLumber)
		cores = append(cores, zapcore.NewCore(
			encoder,
			infoWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= configuredLevel && lvl < zapcore.ErrorLevel
			}),
		))

		errorWriter, errorLumber := createFileWriter(cfg.getErrorFilePath(), cfg)
		writers = append(writers, errorLumber)
		cores = append(cores, zapcore.NewCore(
			encoder,
			errorWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= zapcore.ErrorLevel
			}),
		))
	}

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	// Stacktraces are appended by CtxZapLogger.ErrorCtx with a bounded
	// depth instead of zap.AddStacktrace.

	if len(writers) > 0 {
		m.writers[cfg.moduleName] = writers
	}

	return zap.New(zapcore.NewTee(cores...), opts...)
}

// CloseAll flushes buffers and closes all file handles.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.loggers {
		_ = l.base.Sync()
	}
	for _, writers := range m.writers {
		for _, w := range writers {
			_ = w.Close()
		}
	}
	m.loggers = make(map[string]*CtxZapLogger)
	m.writers = make(map[string][]*lumberjack.Logger)
}

func createEncoder(cfg Config) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Encoding == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func createFileWriter(filename string, cfg Config) (zapcore.WriteSyncer, *lumberjack.Logger) {
	_ = os.MkdirAll(filepath.Dir(filename), 0755)

	lumberLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return zapcore.AddSync(lumberLogger), lumberLogger
}

// GetLogger returns a module logger from the global Manager, initializing
// it with defaults when needed.
func GetLogger(moduleName string) *CtxZapLogger {
	if globalManager == nil {
		InitManager(DefaultManagerConfig())
	}
	return globalManager.GetLogger(moduleName)
}

// CloseAll closes the global Manager's loggers.
func CloseAll() {
	if globalManager == nil {
		return
	}
	globalManager.CloseAll()
}
