// Package log configures diagnostic logging for the keyscan CLI.
//
// Interactive commands own the terminal: demo drives a tcell screen, type
// puts stdin into raw mode, and replay prints scan traffic on stdout. So
// diagnostics never share stdout; they go to stderr, and when a log file is
// configured they move there wholesale instead of fanning out to both.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// LevelTrace sits below Debug and gates wire-level output such as the raw
// feed packet log.
const LevelTrace slog.Level = slog.LevelDebug - 4

// ParseLevel maps a CLI level name to its slog level. The name has already
// passed kong's enum validation; anything else falls back to Info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the process logger. With an empty path it writes to stderr
// and the returned close func is a no-op; otherwise the file is opened for
// append and close flushes it.
func Setup(levelName, path string) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(levelName),
		ReplaceAttr: nameTraceLevel,
	}

	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f.Close, nil
}

// nameTraceLevel renders the custom trace level as TRACE instead of slog's
// default DEBUG-4.
func nameTraceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}
