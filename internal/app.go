package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/middleware"
	"github.com/lk16/shobu/internal/routes"
	"github.com/lk16/shobu/internal/services"
)

const (
	defaultConcurrency = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 5 * time.Second
	defaultBodyLimit   = 64 * 1024 // Positions and moves are tiny

	// writeSlack is added to the bot timeout so a slow bot reply still reaches the client.
	writeSlack = 5 * time.Second
)

func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	return NewApp(cfg, services), cfg
}

// NewApp creates the Fiber app with all middleware and routes.
func NewApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	// Create Fiber app. No prefork: game sessions live in this process.
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: cfg.BotTimeout + writeSlack,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging and CORS middleware
	app.Use(middleware.Logging())
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app
}
