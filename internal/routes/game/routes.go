package game

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/config"
)

// SetupRoutes serves the game page from the static directory. Nothing is served without one.
func SetupRoutes(app *fiber.App, staticDir string) {
	if staticDir == "" {
		return
	}

	app.Get("/game", Page)
	app.Get("/", rootHandler)
}

func rootHandler(c *fiber.Ctx) error {
	return c.Redirect("/game")
}

// Page serves the game.html page.
func Page(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	return c.SendFile(filepath.Join(cfg.StaticDir, "game.html"))
}
