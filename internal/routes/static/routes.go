package static

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

// staticHandler serves static files.
func staticHandler(dir string) fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root:   http.Dir(dir),
		Browse: false,
	})
}

// SetupRoutes serves dir under /static. Nothing is served when dir is empty.
func SetupRoutes(app *fiber.App, dir string) {
	if dir == "" {
		return
	}
	app.Use("/static", staticHandler(dir))
}
