package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger for the relay's structured logging.
type Logger struct {
	*slog.Logger
}

// New creates a logger at the given level. In "development" mode the
// output is human-readable text, otherwise JSON lines.
func New(level, env string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Default returns an info-level JSON logger.
func Default() *Logger {
	return New("info", "")
}

// With returns a child logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch level {
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
