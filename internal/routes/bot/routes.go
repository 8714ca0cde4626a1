package bot

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/middleware"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/services"
	"github.com/lk16/shobu/internal/shobu"
)

// SetupRoutes sets up the bot routes.
func SetupRoutes(app *fiber.App) {
	app.Post("/run-bot", middleware.Token(), runBotHandler)
}

// runBotHandler asks the bot for a move in the posted position without storing a game.
func runBotHandler(c *fiber.Ctx) error {
	var payload models.RunBotRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.RunBotResponse{
			Error: "Invalid request body",
		})
	}

	game, err := shobu.NewGameFromString(payload.GameState)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.RunBotResponse{
			Error: err.Error(),
		})
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck

	move, err := services.Bot.Move(c.UserContext(), game)
	if err != nil {
		status := models.ErrorStatus(err)
		slog.Warn("Bot run failed", "position", payload.GameState, "status", status, "error", err)

		return c.Status(status).JSON(models.RunBotResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(models.RunBotResponse{
		Move: move.String(),
	})
}
