// Package logger provides structured logging for the entity store, built
// on top of go.uber.org/zap's SugaredLogger.
//
// The logger supports the usual level hierarchy (DEBUG, INFO, WARN,
// ERROR), is safe for concurrent use, and is configured once at startup
// via SetLogLevel/Configure. Call-sites use printf-style verbs:
//
//	logger.Info("loaded entity %s (%d bytes)", ref.Hex(), n)
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	base  *zap.Logger
	sugar *zap.SugaredLogger
	level zap.AtomicLevel

	traced          atomic.Bool
	traceMu         sync.RWMutex
	traceSubsystems = make(map[string]bool)
)

func init() {
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base = buildLogger(level)
	sugar = base.Sugar()
}

func buildLogger(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stdout), lvl)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// SetLogLevel sets the minimum log level ("debug", "info", "warn", or
// "error"); unrecognized values are rejected.
func SetLogLevel(l string) error {
	var zl zapcore.Level
	switch strings.ToLower(l) {
	case "debug":
		zl = zapcore.DebugLevel
	case "info":
		zl = zapcore.InfoLevel
	case "warn":
		zl = zapcore.WarnLevel
	case "error":
		zl = zapcore.ErrorLevel
	default:
		return fmt.Errorf("invalid log level: %s", l)
	}
	mu.Lock()
	level.SetLevel(zl)
	mu.Unlock()
	Info("log level changed to %s", strings.ToUpper(l))
	return nil
}

// GetLogLevel returns the current minimum log level as an uppercase
// string.
func GetLogLevel() string {
	return strings.ToUpper(level.Level().String())
}

// EnableTrace turns on verbose Trace output for the named subsystems
// (e.g. "cache", "storage").
func EnableTrace(subsystems ...string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	for _, s := range subsystems {
		traceSubsystems[s] = true
	}
	traced.Store(len(traceSubsystems) > 0)
}

// DisableTrace turns off Trace output for the named subsystems.
func DisableTrace(subsystems ...string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	for _, s := range subsystems {
		delete(traceSubsystems, s)
	}
	traced.Store(len(traceSubsystems) > 0)
}

func isTraceEnabled(subsystem string) bool {
	if !traced.Load() {
		return false
	}
	traceMu.RLock()
	defer traceMu.RUnlock()
	return traceSubsystems[subsystem]
}

// TraceIf logs a debug-level message only if the named subsystem has
// trace enabled via EnableTrace.
func TraceIf(subsystem, format string, args ...interface{}) {
	if !isTraceEnabled(subsystem) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	sugar.Debugf("["+subsystem+"] "+format, args...)
}

// Debug logs a debug-level message.
func Debug(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Debugf(format, args...)
}

// Info logs an info-level message.
func Info(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infof(format, args...)
}

// Warn logs a warning-level message.
func Warn(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Warnf(format, args...)
}

// Error logs an error-level message.
func Error(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Errorf(format, args...)
}

// Fatal logs an error-level message and exits the process.
func Fatal(format string, args ...interface{}) {
	mu.RLock()
	sugar.Errorf(format, args...)
	mu.RUnlock()
	_ = base.Sync()
	os.Exit(1)
}

// Configure applies ENTITYDB_LOG_LEVEL and ENTITYDB_TRACE_SUBSYSTEMS from
// the environment, if set.
func Configure() {
	if l := os.Getenv("ENTITYDB_LOG_LEVEL"); l != "" {
		_ = SetLogLevel(l)
	}
	if t := os.Getenv("ENTITYDB_TRACE_SUBSYSTEMS"); t != "" {
		parts := strings.Split(t, ",")
		for i, s := range parts {
			parts[i] = strings.TrimSpace(s)
		}
		EnableTrace(parts...)
	}
}

// Sync flushes any buffered log output; callers should defer it at
// process exit.
func Sync() error {
	return base.Sync()
}
