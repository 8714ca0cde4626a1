package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs route, status code, response time and handler errors.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path}${game}${chainErr}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"game": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				if id := c.Params("id"); id != "" {
					return fmt.Fprintf(output, " | game %s", id)
				}
				return 0, nil
			},
			"chainErr": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				if data.ChainErr != nil {
					return fmt.Fprintf(output, " | %v", data.ChainErr)
				}
				return 0, nil
			},
		},
	})
}
