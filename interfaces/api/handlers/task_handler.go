package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "title", req.Title, "error", err)
		return h.serviceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		return h.serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var filter dto.TaskFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}

	if err := utils.ValidateStruct(&filter); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Invalid list filter", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	result, err := h.taskService.ListTasks(ctx, &filter)
	if err != nil {
		return h.serviceErrorResponse(c, err)
	}

	responses := dto.TasksToTaskResponses(result.Tasks)
	return utils.PaginatedSuccessResponse(c, responses, result.Total, result.Page, result.Limit)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return h.serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.ToggleTask(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task toggle failed", "task_id", taskID, "error", err)
		return h.serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseTaskID(c)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, taskID); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return h.serviceErrorResponse(c, err)
	}

	return utils.MessageResponse(c, "Task deleted successfully")
}

func (h *TaskHandler) GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	stats, err := h.taskService.GetStats(ctx)
	if err != nil {
		return h.serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, stats)
}

// serviceErrorResponse maps service errors onto the response taxonomy.
// Unknown errors stay generic: internals never reach the caller.
func (h *TaskHandler) serviceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return utils.NotFoundResponse(c, "Task not found")
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidPriority):
		return utils.BadRequestResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c)
	}
}

func parseTaskID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
