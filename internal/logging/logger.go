// Package logging provides categorized structured logging for the fixup tools.
// Every category is a named child of one process-wide zap logger. Until
// Initialize is called all output is discarded, so library code can log
// freely from tests.
package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config resolution
	CategoryTactile  Category = "tactile"  // File reads/writes
	CategoryRewrite  Category = "rewrite"  // Class rewriting
	CategoryTruncate Category = "truncate" // Line truncation
	CategoryDiff     Category = "diff"     // Diff previews
)

// Config mirrors config.LoggingConfig to avoid an import cycle.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // empty means stderr
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Build constructs a zap logger from cfg. verbose forces debug level.
func Build(cfg Config, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(cfg.Format) {
	case "", "text", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Initialize builds the process logger and installs it.
func Initialize(cfg Config, verbose bool) error {
	l, err := Build(cfg, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l)
	Get(CategoryBoot).Debugw("logging initialized", "level", l.Level().String(), "format", cfg.Format, "file", cfg.File)
	return nil
}

// SetLogger replaces the process logger. A nil logger disables output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	base = l
	loggers = make(map[Category]*zap.SugaredLogger)
}

// current returns the process logger.
func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Get returns the logger for a category.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l = base.Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = current().Sync()
}

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Infof(format, args...) }
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debugf(format, args...) }
func BootWarn(format string, args ...interface{})  { Get(CategoryBoot).Warnf(format, args...) }

func Tactile(format string, args ...interface{})      { Get(CategoryTactile).Infof(format, args...) }
func TactileDebug(format string, args ...interface{}) { Get(CategoryTactile).Debugf(format, args...) }
func TactileWarn(format string, args ...interface{})  { Get(CategoryTactile).Warnf(format, args...) }
func TactileError(format string, args ...interface{}) { Get(CategoryTactile).Errorf(format, args...) }

func Rewrite(format string, args ...interface{})      { Get(CategoryRewrite).Infof(format, args...) }
func RewriteDebug(format string, args ...interface{}) { Get(CategoryRewrite).Debugf(format, args...) }
func RewriteError(format string, args ...interface{}) { Get(CategoryRewrite).Errorf(format, args...) }

func Truncate(format string, args ...interface{})      { Get(CategoryTruncate).Infof(format, args...) }
func TruncateDebug(format string, args ...interface{}) { Get(CategoryTruncate).Debugf(format, args...) }
func TruncateWarn(format string, args ...interface{})  { Get(CategoryTruncate).Warnf(format, args...) }

func DiffDebug(format string, args ...interface{}) { Get(CategoryDiff).Debugf(format, args...) }

// Timer tracks operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugw(t.op+" completed", "elapsed", elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warnw(t.op+" slow", "elapsed", elapsed, "threshold", threshold)
	} else {
		Get(t.category).Debugw(t.op+" completed", "elapsed", elapsed)
	}
	return elapsed
}
