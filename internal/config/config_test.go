package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("SHOBU_SERVER_HOST", "localhost")
	t.Setenv("SHOBU_SERVER_PORT", "3001")
	t.Setenv("SHOBU_BOT_PATH", "bots/rust-shobu")
	t.Setenv("SHOBU_BOT_TIMEOUT", "")
	t.Setenv("SHOBU_REDIS_URL", "")
	t.Setenv("SHOBU_BOT_CACHE_TTL", "")
	t.Setenv("SHOBU_TOKEN", "")
	t.Setenv("SHOBU_ALLOW_ORIGINS", "")
	t.Setenv("SHOBU_STATIC_DIR", "")

	cfg := LoadServerConfig()

	require.Equal(t, "localhost", cfg.ServerHost)
	require.Equal(t, "3001", cfg.ServerPort)
	require.Equal(t, "bots/rust-shobu", cfg.BotPath)
	require.Equal(t, DefaultBotTimeout, cfg.BotTimeout)
	require.Equal(t, DefaultBotCacheTTL, cfg.BotCacheTTL)
	require.Equal(t, DefaultAllowOrigins, cfg.AllowOrigins)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.Token)
}

func TestLoadServerConfigOverrides(t *testing.T) {
	t.Setenv("SHOBU_SERVER_HOST", "0.0.0.0")
	t.Setenv("SHOBU_SERVER_PORT", "8080")
	t.Setenv("SHOBU_BOT_PATH", "/usr/local/bin/bot")
	t.Setenv("SHOBU_BOT_TIMEOUT", "750ms")
	t.Setenv("SHOBU_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHOBU_BOT_CACHE_TTL", "1h")
	t.Setenv("SHOBU_TOKEN", "secret")
	t.Setenv("SHOBU_ALLOW_ORIGINS", "https://shobu.example")
	t.Setenv("SHOBU_STATIC_DIR", "static")

	cfg := LoadServerConfig()

	require.Equal(t, 750*time.Millisecond, cfg.BotTimeout)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, time.Hour, cfg.BotCacheTTL)
	require.Equal(t, "secret", cfg.Token)
	require.Equal(t, "https://shobu.example", cfg.AllowOrigins)
	require.Equal(t, "static", cfg.StaticDir)
}

func TestLoadPlayClientConfig(t *testing.T) {
	t.Setenv("SHOBU_SERVER_URL", "http://localhost:3001/")
	t.Setenv("SHOBU_TOKEN", "secret")

	cfg := LoadPlayClientConfig()

	require.Equal(t, "http://localhost:3001", cfg.ServerURL)
	require.Equal(t, "secret", cfg.Token)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	}

	for input, want := range tests {
		level, err := parseLogLevel(input)
		require.NoError(t, err)
		require.Equal(t, want, level)
	}

	_, err := parseLogLevel("verbose")
	require.Error(t, err)
}
