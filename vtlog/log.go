// Package vtlog provides the structured logger shared by every package in
// this module. It wraps log/slog the same way an embedder-facing library
// typically does: a package-level logger, a runtime-adjustable level, and
// two custom levels: Trace below Debug for parser/sequencer tracing, and
// Unsupported between Debug and Info.
package vtlog

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	// LevelTrace is used for byte-level parser and dispatch tracing.
	LevelTrace = slog.Level(-8)
	// LevelUnsupported marks a recognized-but-unimplemented sequence (§7).
	LevelUnsupported = slog.Level(-2)
)

var levelNames = map[slog.Leveler]string{
	LevelTrace:       "TRACE",
	LevelUnsupported: "UNSUPP",
}

type wrappedLogger struct {
	*slog.Logger
	level *slog.LevelVar
}

// Logger is the module-wide logger. Embedders may call SetOutput/SetLevel
// before constructing a Terminal to redirect or filter diagnostics.
var Logger = newDefault()

func newDefault() *wrappedLogger {
	w := &wrappedLogger{level: new(slog.LevelVar)}
	w.level.Set(slog.LevelInfo)
	w.SetOutput(os.Stderr)
	return w
}

// SetLevel adjusts the minimum level logged, including the custom levels
// declared above.
func SetLevel(l slog.Level) { Logger.level.Set(l) }

// SetOutput redirects future log records to w.
func SetOutput(w io.Writer) { Logger.SetOutput(w) }

func (l *wrappedLogger) SetOutput(w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: l.level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				lvl := a.Value.Any().(slog.Level)
				if name, ok := levelNames[lvl]; ok {
					a.Value = slog.StringValue(name)
				}
			}
			return a
		},
	}
	l.Logger = slog.New(slog.NewTextHandler(w, opts)).With("pid", os.Getpid())
}

// Trace logs at LevelTrace, used on the parser's slow path.
func Trace(msg string, args ...any) {
	Logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Unsupported logs a recognized-but-unimplemented dispatch once at
// LevelUnsupported per §7's "Sequence unsupported" disposition.
func Unsupported(msg string, args ...any) {
	Logger.Log(context.Background(), LevelUnsupported, msg, args...)
}

func Debug(msg string, args ...any) { Logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger.Warn(msg, args...) }
func Error(msg string, args ...any) { Logger.Error(msg, args...) }
