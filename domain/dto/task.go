package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubTaskRequest struct {
	ID        string `json:"id" validate:"omitempty,max=64"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Completed bool   `json:"completed"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=60"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Status      string           `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    int              `json:"priority" validate:"omitempty,min=1,max=3"`
	Deadline    *time.Time       `json:"deadline" validate:"omitempty"`
	Subtasks    []SubTaskRequest `json:"subtasks" validate:"omitempty,dive"`
}

// UpdateTaskRequest merges by zero value: empty string and zero fields are
// treated as "not supplied" and leave the stored value unchanged. A
// description therefore cannot be cleared back to empty through an update;
// only Subtasks supports explicit replacement via its pointer.
type UpdateTaskRequest struct {
	Title       string     `json:"title" validate:"omitempty,min=1,max=60"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    int        `json:"priority" validate:"omitempty,min=1,max=3"`
	Deadline    *time.Time `json:"deadline" validate:"omitempty"`
	// nil leaves subtasks unchanged; a non-nil slice replaces the whole array.
	Subtasks *[]SubTaskRequest `json:"subtasks" validate:"omitempty,dive"`
}

type TaskFilterRequest struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Search   string `query:"search" validate:"omitempty,max=200"`
	Status   string `query:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority int    `query:"priority" validate:"omitempty,min=1,max=3"`
}

type SubTaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Completed   bool              `json:"completed"`
	Priority    int               `json:"priority"`
	Deadline    *time.Time        `json:"deadline"`
	Subtasks    []SubTaskResponse `json:"subtasks"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type TaskStatsResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ByPriority     map[string]int64 `json:"byPriority"`
	Overdue        int64            `json:"overdue"`
	CompletionRate float64          `json:"completionRate"`
}
