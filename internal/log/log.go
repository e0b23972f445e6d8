// Package log provides the shared zap-backed logger for the services.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

// Init configures the package-level logger. Debug mode switches to the
// development encoder with debug-level output.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	logger = zapLogger.Sugar()
	return nil
}

// get falls back to a production logger so that logging (and Fatalf exits)
// still work before Init runs.
func get() *zap.SugaredLogger {
	if logger == nil {
		fallback, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			fallback = zap.NewNop()
		}
		logger = fallback.Sugar()
	}
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = get().Sync()
}

func Debugf(template string, args ...any) { get().Debugf(template, args...) }
func Infof(template string, args ...any)  { get().Infof(template, args...) }
func Warnf(template string, args ...any)  { get().Warnf(template, args...) }
func Errorf(template string, args ...any) { get().Errorf(template, args...) }
func Fatalf(template string, args ...any) { get().Fatalf(template, args...) }

func Info(args ...any)  { get().Info(args...) }
func Warn(args ...any)  { get().Warn(args...) }
func Error(args ...any) { get().Error(args...) }
