package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.Token())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Post("/games/:id/moves", MakeMove)
	apiGroup.Post("/games/:id/bot-move", MakeBotMove)
}
