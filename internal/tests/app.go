package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal"
	"github.com/lk16/shobu/internal/bot"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/repository"
	"github.com/lk16/shobu/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken = "test-token"

	// StartPosition is the position of a new game.
	StartPosition = "b wwww________bbbb wwww________bbbb wwww________bbbb wwww________bbbb"

	// appTestTimeout bounds app.Test calls, which may wait on a bot.
	appTestTimeout = 10 * time.Second
)

// WriteBot writes an executable shell script bot and returns its path.
func WriteBot(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bot")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755)
	require.NoError(t, err)

	return path
}

// EchoBot returns a bot script that always plays move.
func EchoBot(move string) string {
	return "cat > /dev/null; echo " + move
}

// NewConfig returns a server config for tests using the bot at botPath.
func NewConfig(botPath string) *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:   "127.0.0.1",
		ServerPort:   "0",
		BotPath:      botPath,
		BotTimeout:   time.Second,
		BotCacheTTL:  time.Minute,
		Token:        TestToken,
		AllowOrigins: config.DefaultAllowOrigins,
	}
}

// NewApp creates an app with an in-memory bot cache.
func NewApp(t *testing.T, cfg *config.ServerConfig) (*fiber.App, *services.Services) {
	t.Helper()

	cache := repository.NewMemoryMoveCache(cfg.BotCacheTTL)
	services := services.NewServices(nil, bot.NewService(bot.NewRunner(cfg), cache))

	return internal.NewApp(cfg, services), services
}

// Request sends a JSON request to app and returns the status code and body. A nil payload sends
// no body. An empty token sends no x-token header.
func Request(t *testing.T, app *fiber.App, method string, path string, payload any, token string) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, int(appTestTimeout/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

// Listen serves app on a random local port until the test ends and returns the base URL.
func Listen(t *testing.T, app *fiber.App) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(listener)
	}()

	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return "http://" + listener.Addr().String()
}
