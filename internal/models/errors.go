package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/bot"
	"github.com/lk16/shobu/internal/repository"
	"github.com/lk16/shobu/internal/shobu"
)

// ErrorStatus returns the HTTP status code for an error returned by the engine, the bot or the
// game repository.
func ErrorStatus(err error) int {
	switch {
	// Check bot reply errors first: they wrap engine errors.
	case errors.Is(err, bot.ErrInvalidReply), errors.Is(err, bot.ErrEmptyReply):
		return fiber.StatusBadGateway
	case errors.Is(err, shobu.ErrInvalidFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, shobu.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrGameNotFound), errors.Is(err, bot.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, bot.ErrTimeout):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
