package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/middleware"
	"github.com/lk16/shobu/internal/services"
	"github.com/lk16/shobu/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	h := ws.NewHandler(c, services)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// requireUpgrade rejects plain HTTP requests to the websocket route.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.Token(), requireUpgrade, websocket.New(handleWs))
}
