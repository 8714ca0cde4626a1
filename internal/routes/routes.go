package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/routes/api"
	"github.com/lk16/shobu/internal/routes/bot"
	"github.com/lk16/shobu/internal/routes/game"
	"github.com/lk16/shobu/internal/routes/static"
	"github.com/lk16/shobu/internal/routes/version"
	"github.com/lk16/shobu/internal/routes/ws"
)

func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	// Serve API routes
	api.SetupRoutes(app)
	bot.SetupRoutes(app)

	// Serve websocket
	ws.SetupRoutes(app)

	// Serve static files
	static.SetupRoutes(app, cfg.StaticDir)

	// Serve the game page
	game.SetupRoutes(app, cfg.StaticDir)

	// Serve version info
	version.SetupRoutes(app)
}
