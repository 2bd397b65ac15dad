package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	redispkg "todo-api/infrastructure/redis"
	"todo-api/pkg/logger"
)

const (
	// Cache keys and TTL for list responses
	taskListCachePrefix = "tasks:list:"
	taskListCacheTTL    = 60 * time.Second

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	cache    *redispkg.Client // optional - nil disables the list cache
}

func NewTaskService(taskRepo repositories.TaskRepository, cache *redispkg.Client) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		cache:    cache,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, services.ErrInvalidStatus
	}

	priority := req.Priority
	if priority == 0 {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, services.ErrInvalidPriority
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    req.Deadline,
		Subtasks:    normalizeSubtasks(dto.SubTaskRequestsToSubTasks(req.Subtasks)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "title", req.Title, "error", err)
		return nil, err
	}

	s.invalidateListCache(ctx)

	logger.InfoContext(ctx, "Task created", "task_id", task.ID)
	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to get task", "task_id", taskID, "error", err)
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter *dto.TaskFilterRequest) (*services.TaskListResult, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, services.ErrInvalidStatus
	}
	if filter.Priority != 0 && !models.ValidPriority(filter.Priority) {
		return nil, services.ErrInvalidPriority
	}

	page := filter.Page
	if page < 1 {
		page = defaultPage
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := listCacheKey(page, limit, filter.Search, filter.Status, filter.Priority)
	if s.cache != nil {
		var cached services.TaskListResult
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !redispkg.IsCacheMiss(err) {
			logger.WarnContext(ctx, "List cache read failed", "key", cacheKey, "error", err)
		}
	}

	offset := (page - 1) * limit
	tasks, total, err := s.taskRepo.List(ctx, repositories.TaskFilter{
		Search:   filter.Search,
		Status:   filter.Status,
		Priority: filter.Priority,
	}, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "page", page, "limit", limit, "error", err)
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	result := &services.TaskListResult{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, result, taskListCacheTTL); err != nil {
			logger.WarnContext(ctx, "List cache write failed", "key", cacheKey, "error", err)
		}
	}

	return result, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return nil, services.ErrInvalidStatus
	}
	if req.Priority != 0 && !models.ValidPriority(req.Priority) {
		return nil, services.ErrInvalidPriority
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != 0 {
		task.Priority = req.Priority
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Subtasks != nil {
		// Whole-array replacement: the client sends the complete new list.
		task.Subtasks = normalizeSubtasks(dto.SubTaskRequestsToSubTasks(*req.Subtasks))
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	s.invalidateListCache(ctx)

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)
	return task, nil
}

func (s *TaskServiceImpl) ToggleTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == models.StatusCompleted {
		task.Status = models.StatusPending
	} else {
		task.Status = models.StatusCompleted
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to toggle task", "task_id", taskID, "error", err)
		return nil, err
	}

	s.invalidateListCache(ctx)

	logger.InfoContext(ctx, "Task toggled", "task_id", taskID, "status", task.Status)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}

	s.invalidateListCache(ctx)

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)
	return nil
}

func (s *TaskServiceImpl) GetStats(ctx context.Context) (*dto.TaskStatsResponse, error) {
	stats, err := s.taskRepo.Stats(ctx, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load task stats", "error", err)
		return nil, err
	}

	byPriority := map[string]int64{
		"low":    stats.ByPriority[models.PriorityLow],
		"medium": stats.ByPriority[models.PriorityMedium],
		"high":   stats.ByPriority[models.PriorityHigh],
	}

	byStatus := map[string]int64{
		models.StatusPending:    stats.ByStatus[models.StatusPending],
		models.StatusInProgress: stats.ByStatus[models.StatusInProgress],
		models.StatusCompleted:  stats.ByStatus[models.StatusCompleted],
	}

	var completionRate float64
	if stats.Total > 0 {
		completionRate = float64(byStatus[models.StatusCompleted]) / float64(stats.Total)
	}

	return &dto.TaskStatsResponse{
		Total:          stats.Total,
		ByStatus:       byStatus,
		ByPriority:     byPriority,
		Overdue:        stats.Overdue,
		CompletionRate: completionRate,
	}, nil
}

// invalidateListCache flushes every cached list page. Namespace-wide on
// purpose: any write can make any cached page stale.
func (s *TaskServiceImpl) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.ScanAndDelete(ctx, taskListCachePrefix+"*"); err != nil {
		logger.WarnContext(ctx, "List cache invalidation failed", "error", err)
	}
}

// normalizeSubtasks assigns IDs to subtasks the client sent without one.
func normalizeSubtasks(subtasks []models.SubTask) []models.SubTask {
	for i := range subtasks {
		if subtasks[i].ID == "" {
			subtasks[i].ID = uuid.New().String()
		}
	}
	return subtasks
}

func listCacheKey(page, limit int, search, status string, priority int) string {
	return fmt.Sprintf("%s%d:%d:%s:%s:%d", taskListCachePrefix, page, limit, search, status, priority)
}
