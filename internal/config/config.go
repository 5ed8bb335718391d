package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	DataDir   string
	SavePath  string
	RedisAddr string
	LogLevel  slog.Level
}

func Load() *Config {
	return &Config{
		DataDir:   getEnv("ZEELORE_DATA_DIR", defaultDataDir()),
		SavePath:  getEnv("ZEELORE_SAVE", ""),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		LogLevel:  parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// defaultDataDir points at the game's Unity data directory for the current
// platform, falling back to the working directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "unity3d", "Failbetter Games", "Sunless Sea")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
