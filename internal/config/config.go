package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken          string
	DatabasePath      string
	LogLevel          string
	Port              string
	HistoryWindow     int
	RateLimitWindow   time.Duration
	RateLimitRequests int
	SessionMaxIdle    time.Duration
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	config := Config{
		BotToken:          os.Getenv("BOT_TOKEN"),
		DatabasePath:      envOrDefault("DATABASE_PATH", "./data/nutrio.db"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		Port:              envOrDefault("PORT", "8080"),
		HistoryWindow:     envOrDefaultInt("HISTORY_WINDOW", 14),
		RateLimitWindow:   time.Minute,
		RateLimitRequests: envOrDefaultInt("RATE_LIMIT_REQUESTS", 30),
		SessionMaxIdle:    envOrDefaultDuration("SESSION_MAX_IDLE", 30*time.Minute),
	}

	if config.BotToken == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is required")
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
		slog.Warn("ignoring invalid integer env value", "key", key, "value", value)
	}
	return defaultValue
}

func envOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
		slog.Warn("ignoring invalid duration env value", "key", key, "value", value)
	}
	return defaultValue
}
