package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/momopress-backend/internal/config"
)

// NewLogger creates the JSON slog.Logger used by every binary, writing to stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	return New(os.Stdout, cfg.Logging.Level, cfg.Application.Name)
}

// New builds a JSON logger on w. Source locations are only attached at debug level.
// A non-empty app name is added to every record under "app".
func New(w io.Writer, levelName, app string) *slog.Logger {
	level := ParseLevel(levelName)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})
	logger := slog.New(handler)
	if app != "" {
		logger = logger.With("app", app)
	}

	logger.Debug("logger initialized", "level", level.String())
	return logger
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Used by tests and the CLI's quiet mode.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
