package api

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/repository"
	"github.com/lk16/shobu/internal/services"
	"github.com/lk16/shobu/internal/shobu"
)

func errorResponse(c *fiber.Ctx, err error) error {
	status := models.ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("Game request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseGameID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: game ID %q", shobu.ErrInvalidFormat, c.Params("id"))
	}
	return id, nil
}

func gameResponse(c *fiber.Ctx, status int, snapshot repository.GameSnapshot) error {
	return c.Status(status).JSON(models.NewGameViewFromSnapshot(snapshot))
}

// CreateGame starts a game session, from the start position unless a state is given.
func CreateGame(c *fiber.Ctx) error {
	var payload models.NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	game := shobu.NewGameStart()
	if payload.State != "" {
		var err error
		game, err = shobu.NewGameFromString(payload.State)
		if err != nil {
			return errorResponse(c, err)
		}
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	snapshot := services.Games.Create(game)

	slog.Info("Created game", "id", snapshot.ID, "state", game.String())

	return gameResponse(c, fiber.StatusCreated, snapshot)
}

// GetGame returns a game session.
func GetGame(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	snapshot, err := services.Games.Get(id)
	if err != nil {
		return errorResponse(c, err)
	}

	return gameResponse(c, fiber.StatusOK, snapshot)
}

// DeleteGame removes a game session.
func DeleteGame(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	if err = services.Games.Delete(id); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MakeMove applies a move in notation for the side to move.
func MakeMove(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var payload models.MoveRequest
	if err = c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	snapshot, err := services.Games.MakeMoveFromString(id, payload.Move)
	if err != nil {
		return errorResponse(c, err)
	}

	return gameResponse(c, fiber.StatusOK, snapshot)
}

// MakeBotMove asks the bot for a move and applies it.
func MakeBotMove(c *fiber.Ctx) error {
	id, err := parseGameID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck
	ctx := c.UserContext()

	snapshot, err := services.Games.MakeMove(id, func(game *shobu.Game) (shobu.Move, error) {
		return services.Bot.Move(ctx, game)
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return gameResponse(c, fiber.StatusOK, snapshot)
}
