// Package rowlog is the process-wide structured logger, grounded on the
// teacher pack's cmd/hiveexplorer/logger package: a package-level *slog.Logger
// that defaults to discarding everything until Init is called from main.
package rowlog

import (
	"io"
	"log/slog"
	"os"
)

// L is the active logger. Discards everything until Init runs.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Debug bool // Enable verbose (debug-level) logging to stderr.
}

// Init installs the process logger. Call once from main before running a
// program. With Debug unset, only warnings and errors reach stderr, so the
// driver's info-level messages (such as "assembled program") stay quiet;
// with Debug set, debug- and info-level records are written too.
func Init(opts Options) {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
