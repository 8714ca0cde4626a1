package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/config"
)

// Token middleware that checks the x-token header. It lets everything through when no token is
// configured.
func Token() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

		if cfg.Token == "" {
			return c.Next()
		}

		token := c.Get("x-token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) == 1 {
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
}
