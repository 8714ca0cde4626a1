package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	DefaultBotTimeout   = 5 * time.Second
	DefaultBotCacheTTL  = 10 * time.Minute
	DefaultAllowOrigins = "http://localhost:5173"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost string
	ServerPort string

	// BotPath is the executable that reads a position on stdin and prints a move.
	BotPath    string
	BotTimeout time.Duration

	// RedisURL is optional. Without it bot replies are cached in memory.
	RedisURL    string
	BotCacheTTL time.Duration

	// Token is optional. When set, API routes require it in the x-token header.
	Token string

	AllowOrigins string
	StaticDir    string
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:   getEnvMust("SHOBU_SERVER_HOST"),
		ServerPort:   getEnvMust("SHOBU_SERVER_PORT"),
		BotPath:      getEnvMust("SHOBU_BOT_PATH"),
		BotTimeout:   getEnvDuration("SHOBU_BOT_TIMEOUT", DefaultBotTimeout),
		RedisURL:     os.Getenv("SHOBU_REDIS_URL"),
		BotCacheTTL:  getEnvDuration("SHOBU_BOT_CACHE_TTL", DefaultBotCacheTTL),
		Token:        os.Getenv("SHOBU_TOKEN"),
		AllowOrigins: getEnvDefault("SHOBU_ALLOW_ORIGINS", DefaultAllowOrigins),
		StaticDir:    os.Getenv("SHOBU_STATIC_DIR"),
	}
}

// PlayClientConfig holds the configuration of the play command.
type PlayClientConfig struct {
	ServerURL string
	Token     string
}

// LoadPlayClientConfig loads configuration from environment variables.
func LoadPlayClientConfig() *PlayClientConfig {
	return &PlayClientConfig{
		ServerURL: strings.TrimRight(getEnvMust("SHOBU_SERVER_URL"), "/"),
		Token:     os.Getenv("SHOBU_TOKEN"),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
