// Package logging builds the slog loggers used by the synthmc commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// EnvLevel overrides the level given to New when set (debug, info, warn, error).
const EnvLevel = "SYNTHMC_LOG_LEVEL"

// New creates the application logger.
// It writes to Stderr so that progress output and JSON-RPC on Stdout stay clean.
func New(level slog.Level) *slog.Logger {
	if v := os.Getenv(EnvLevel); v != "" {
		if parsed, err := ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a text logger on w.
// The "error" key is renamed to "err" and durations are rounded to the millisecond.
func NewWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			if a.Value.Kind() == slog.KindDuration {
				a.Value = slog.DurationValue(a.Value.Duration().Round(time.Millisecond))
			}
			return a
		},
	}))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
