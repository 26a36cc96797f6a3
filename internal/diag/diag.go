// Package diag wires process-wide structured logging. Debug output is
// gated behind BEZEL_DEBUG so normal runs stay silent on stderr — grounded
// on vito-dang's go.mod pulling in a colorized slog handler for its CLI
// logging, adapted here to github.com/lmittmann/tint directly.
package diag

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var logger = newLogger()

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debugEnabled() {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h)
}

func debugEnabled() bool {
	v := strings.TrimSpace(os.Getenv("BEZEL_DEBUG"))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// Logger returns the process-wide structured logger.
func Logger() *slog.Logger { return logger }

// Debug logs at debug level, a no-op unless BEZEL_DEBUG is set.
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Warn logs a recoverable anomaly.
func Warn(msg string, args ...any) { logger.Warn(msg, args...) }

// Error logs a failure the caller is about to surface or abandon on.
func Error(msg string, args ...any) { logger.Error(msg, args...) }
