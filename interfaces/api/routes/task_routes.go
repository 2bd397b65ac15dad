package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
	"todo-api/pkg/utils"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	tasks := api.Group("/tasks")

	// /stats before /:id so it is not captured as an ID
	tasks.Get("/stats", h.TaskHandler.GetStats)

	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
	tasks.Patch("/:id/toggle", h.TaskHandler.ToggleTask)

	// Anything else on known paths is a method mismatch
	tasks.All("/", methodNotAllowed)
	tasks.All("/:id", methodNotAllowed)
	tasks.All("/:id/toggle", methodNotAllowed)
}

func methodNotAllowed(c *fiber.Ctx) error {
	return utils.MethodNotAllowedResponse(c)
}
