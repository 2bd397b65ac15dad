package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	SetupTaskRoutes(api, h)
}
