// Package log builds the zap loggers shared by both CLI binaries.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Verbose enables debug
// output; otherwise the level is info.
func New(verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	logger, err := cfg.Build()
	if err != nil {
		// The development config is static; a build failure is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return logger.Sugar()
}

// NewNop returns a logger that discards everything. Used by tests and as the
// default when callers do not supply their own.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
