package logger

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the per-module log configuration built by the Manager.
type Config struct {
	Level    string
	Encoding string // json or console

	// Internal fields set by the Manager.
	moduleName string
	logDir     string

	EnableFile    bool
	EnableConsole bool

	EnableDateInFilename bool
	DateFormat           string

	// File rotation.
	MaxSize    int // MB per file
	MaxBackups int
	MaxAge     int // days
	Compress   bool

	EnableCaller     bool
	EnableStacktrace bool
	StacktraceLevel  string
}

// ManagerConfig is the shared configuration for all module loggers.
type ManagerConfig struct {
	BaseLogDir           string `mapstructure:"base_log_dir"`
	Level                string `mapstructure:"level"`
	ServerName           string `mapstructure:"server_name"` // injected into every entry
	Encoding             string `mapstructure:"encoding"`
	EnableConsole        bool   `mapstructure:"enable_console"`
	EnableFile           bool   `mapstructure:"enable_file"`
	EnableDateInFilename bool   `mapstructure:"enable_date_in_filename"`
	DateFormat           string `mapstructure:"date_format"`
	MaxSize              int    `mapstructure:"max_size"`
	MaxBackups           int    `mapstructure:"max_backups"`
	MaxAge               int    `mapstructure:"max_age"`
	Compress             bool   `mapstructure:"compress"`
	EnableCaller         bool   `mapstructure:"enable_caller"`
	EnableStacktrace     bool   `mapstructure:"enable_stacktrace"`
	StacktraceLevel      string `mapstructure:"stacktrace_level"`
	StacktraceDepth      int    `mapstructure:"stacktrace_depth"` // 0 = unlimited

	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`
	TraceIDFieldName string `mapstructure:"trace_id_field_name"`
}

// DefaultManagerConfig returns the default manager configuration.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		BaseLogDir:           "logs",
		Level:                "info",
		Encoding:             "json",
		EnableConsole:        true,
		EnableFile:           true,
		EnableDateInFilename: true,
		DateFormat:           "2006-01-02",
		MaxSize:              100,
		MaxBackups:           3,
		MaxAge:               28,
		Compress:             true,
		EnableCaller:         true,
		EnableStacktrace:     true,
		StacktraceLevel:      "error",
		StacktraceDepth:      5,
		EnableTraceID:        true,
		TraceIDKey:           "trace_id",
		TraceIDFieldName:     "trace_id",
	}
}

// ApplyDefaults fills zero-valued fields in place. Booleans keep their
// value since an unset bool is indistinguishable from false.
func (c *ManagerConfig) ApplyDefaults() {
	defaults := DefaultManagerConfig()

	if c.BaseLogDir == "" {
		c.BaseLogDir = defaults.BaseLogDir
	}
	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Encoding == "" {
		c.Encoding = defaults.Encoding
	}
	if c.DateFormat == "" {
		c.DateFormat = defaults.DateFormat
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = defaults.StacktraceLevel
	}
	if c.TraceIDKey == "" {
		c.TraceIDKey = defaults.TraceIDKey
	}
	if c.TraceIDFieldName == "" {
		c.TraceIDFieldName = defaults.TraceIDFieldName
	}
	if c.MaxSize == 0 {
		c.MaxSize = defaults.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaults.MaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaults.MaxAge
	}
}

// Validate checks the manager configuration.
func (c ManagerConfig) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, validLevels)
	}

	validEncodings := []string{"json", "console"}
	if !contains(validEncodings, c.Encoding) {
		return fmt.Errorf("invalid log encoding: %s (valid: %v)", c.Encoding, validEncodings)
	}

	if c.MaxSize < 1 || c.MaxSize > 10000 {
		return fmt.Errorf("max_size must be 1-10000 MB, got: %d", c.MaxSize)
	}
	if c.MaxBackups < 0 || c.MaxBackups > 100 {
		return fmt.Errorf("max_backups must be 0-100, got: %d", c.MaxBackups)
	}
	if c.MaxAge < 1 || c.MaxAge > 365 {
		return fmt.Errorf("max_age must be 1-365 days, got: %d", c.MaxAge)
	}
	return nil
}

// ParseLevel parses a log level string; unknown values map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// getInfoFilePath builds the info-and-below log file path for a module.
func (c Config) getInfoFilePath() string {
	return c.buildFilePath("info")
}

// getErrorFilePath builds the error-and-above log file path for a module.
func (c Config) getErrorFilePath() string {
	return c.buildFilePath("error")
}

func (c Config) buildFilePath(level string) string {
	parts := []string{c.moduleName, level}
	if c.EnableDateInFilename {
		parts = append(parts, time.Now().Format(c.DateFormat))
	}
	name := strings.Join(parts, ".") + ".log"
	return filepath.Join(c.logDir, c.moduleName, name)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
