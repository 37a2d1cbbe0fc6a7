package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string
	// ServiceName is attached to every entry
	ServiceName string
	// Development enables console encoding and debug level defaults
	Development bool
}

// Logger wraps zap.Logger
type Logger struct {
	zap *zap.Logger
}

var (
	global *Logger
	mu     sync.Mutex
)

// Init initializes the global logger
func Init(cfg *Config) error {
	mu.Lock()
	defer mu.Unlock()

	if cfg == nil {
		cfg = &Config{Level: "info", ServiceName: "internmatch"}
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			// Unknown level strings fall back to info
			level = zapcore.InfoLevel
		}
	}
	if cfg.Development && cfg.Level == "" {
		level = zapcore.DebugLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}

	global = &Logger{zap: l}
	return nil
}

// Get returns the global logger, initializing a default one if needed
func Get() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		l, _ := zap.NewProduction(zap.AddCallerSkip(1))
		global = &Logger{zap: l}
	}
	return global
}

// NewNop returns a logger that discards all output. Used in tests.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Sync flushes buffered log entries
func Sync() {
	if global != nil {
		_ = global.zap.Sync()
	}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info logs at info level
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs at error level
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// Fatal logs at fatal level and exits
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, fields...)
}

// With returns a child logger with the given fields attached
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Zap returns the underlying zap.Logger
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}
