package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-api/domain/models"
	"todo-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	// Save writes every field, so cleared subtasks and status rollbacks stick.
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter repositories.TaskFilter, offset, limit int) ([]*models.Task, int64, error) {
	var tasks []*models.Task
	var total int64

	// Count and fetch share one read transaction so total matches the page.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := applyFilter(tx.Model(&models.Task{}), filter)
		if err := query.Count(&total).Error; err != nil {
			return err
		}
		return query.
			Order("updated_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&tasks).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepositoryImpl) Stats(ctx context.Context, now time.Time) (*repositories.TaskStats, error) {
	stats := &repositories.TaskStats{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[int]int64),
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Task{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Task{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	var priorityRows []struct {
		Priority int
		Count    int64
	}
	if err := db.Model(&models.Task{}).
		Select("priority, count(*) as count").
		Group("priority").
		Find(&priorityRows).Error; err != nil {
		return nil, err
	}
	for _, row := range priorityRows {
		stats.ByPriority[row.Priority] = row.Count
	}

	overdue, err := r.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.Overdue = overdue

	return stats, nil
}

func (r *TaskRepositoryImpl) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("deadline IS NOT NULL AND deadline < ? AND status <> ?", now, models.StatusCompleted).
		Count(&count).Error
	return count, err
}

func applyFilter(query *gorm.DB, filter repositories.TaskFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority > 0 {
		query = query.Where("priority = ?", filter.Priority)
	}
	return query
}
