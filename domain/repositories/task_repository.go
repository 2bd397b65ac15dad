package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// TaskFilter narrows List results. Zero values mean "no constraint".
type TaskFilter struct {
	Search   string // case-insensitive substring over title or description
	Status   string
	Priority int
}

// TaskStats is the aggregate view over the whole task table.
type TaskStats struct {
	Total      int64
	ByStatus   map[string]int64
	ByPriority map[int]int64
	Overdue    int64
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns one page ordered by updated_at descending, plus the total
	// matching count. Count and fetch run in a single read transaction.
	List(ctx context.Context, filter TaskFilter, offset, limit int) ([]*models.Task, int64, error)
	Stats(ctx context.Context, now time.Time) (*TaskStats, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}
