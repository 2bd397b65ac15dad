package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities (low..high)
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// SubTask is a checklist item owned by exactly one Task. IDs are unique
// within the parent task only.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string `gorm:"default:'pending';index"`
	Priority    int    `gorm:"default:2;index"`
	Deadline    *time.Time
	// Subtasks live in a jsonb column: the array is replaced as a whole on
	// update and is removed together with its task.
	Subtasks  []SubTask `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}

// Completed reports whether the task has reached its terminal status.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is within the low..high range.
func ValidPriority(p int) bool {
	return p >= PriorityLow && p <= PriorityHigh
}
