package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

// Sentinel errors handlers translate into response codes.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)

// TaskListResult is one page of tasks plus pagination totals.
type TaskListResult struct {
	Tasks      []*models.Task `json:"tasks"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type TaskService interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, filter *dto.TaskFilterRequest) (*TaskListResult, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	ToggleTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
	GetStats(ctx context.Context) (*dto.TaskStatsResponse, error)
}
