package logger

import (
	"log/slog"
	"os"

	"zeelore/internal/config"
)

// Setup configures the global slog logger. Output goes to stderr so rendered
// entity text on stdout stays pipeable.
func Setup(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Quiet configures a logger that only reports errors, for the interactive
// console where the TUI owns the terminal.
func Quiet() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	slog.SetDefault(logger)
	return logger
}
