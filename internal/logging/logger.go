// Package logging builds the zap loggers used by the parameter tools.
// Every subsystem logs through a named category so noisy areas can be muted
// from the config file without touching the others.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"openscope-params/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryConfig   Category = "config"   // Config and repo-root resolution
	CategoryExport   Category = "export"   // Schema export
	CategoryPolicy   Category = "policy"   // Disk-space policy updates
	CategoryValidate Category = "validate" // Pack validation
	CategoryResolve  Category = "resolve"  // Schema reference resolution
	CategoryMetrics  Category = "metrics"  // Run metrics textfile
)

// Loggers hands out category loggers that share one core.
type Loggers struct {
	base *zap.Logger
	cfg  config.LoggingConfig
}

// New builds the root logger from cfg. verbose forces debug level.
// Output goes to stderr so stdout stays reserved for result lines.
func New(cfg config.LoggingConfig, verbose bool) (*Loggers, error) {
	level, ok := config.ParseLevel(cfg.Level)
	if !ok {
		return nil, fmt.Errorf("logging: unknown level %q", cfg.Level)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.DisableStacktrace = true
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if cfg.Format != "json" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	base, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return &Loggers{base: base, cfg: cfg}, nil
}

// Wrap uses an existing logger as the root, e.g. zaptest or zap.NewNop in tests.
func Wrap(base *zap.Logger, cfg config.LoggingConfig) *Loggers {
	if base == nil {
		base = zap.NewNop()
	}
	return &Loggers{base: base, cfg: cfg}
}

// Get returns the logger for a category, or a no-op logger when the category
// is switched off.
func (l *Loggers) Get(cat Category) *zap.Logger {
	if l == nil || l.base == nil {
		return zap.NewNop()
	}
	if !l.cfg.IsCategoryEnabled(string(cat)) {
		return zap.NewNop()
	}
	return l.base.Named(string(cat))
}

// Root returns the uncategorised logger.
func (l *Loggers) Root() *zap.Logger {
	if l == nil || l.base == nil {
		return zap.NewNop()
	}
	return l.base
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Loggers) Sync() {
	if l == nil || l.base == nil {
		return
	}
	_ = l.base.Sync()
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
