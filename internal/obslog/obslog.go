// Package obslog is the logging hook the core accepts instead of an
// implicit global logger (spec §9): a plain function value, with
// adapters onto the teacher stack's two logging libraries so either can
// back it.
package obslog

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// Level is a logging severity, independent of any specific logging
// library.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Hook receives one structured log line. A nil Hook is valid everywhere
// in this module and is a no-op.
type Hook func(level Level, msg string, kv ...any)

// Call invokes h if non-nil, so callers never need a nil check.
func (h Hook) Call(level Level, msg string, kv ...any) {
	if h == nil {
		return
	}
	h(level, msg, kv...)
}

// FromSlog adapts a *slog.Logger into a Hook.
func FromSlog(l *slog.Logger) Hook {
	if l == nil {
		l = slog.Default()
	}
	return func(level Level, msg string, kv ...any) {
		l.Log(context.Background(), slogLevel(level), msg, kv...)
	}
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromZerolog adapts a zerolog.Logger into a Hook.
func FromZerolog(l zerolog.Logger) Hook {
	return func(level Level, msg string, kv ...any) {
		var ev *zerolog.Event
		switch level {
		case LevelDebug:
			ev = l.Debug()
		case LevelWarn:
			ev = l.Warn()
		case LevelError:
			ev = l.Error()
		default:
			ev = l.Info()
		}
		for i := 0; i+1 < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				continue
			}
			ev = ev.Interface(key, kv[i+1])
		}
		ev.Msg(msg)
	}
}
