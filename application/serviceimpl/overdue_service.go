package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"todo-api/domain/repositories"
	"todo-api/pkg/logger"
	"todo-api/pkg/scheduler"
)

// OverdueSweepConfig controls how often the sweep runs.
type OverdueSweepConfig struct {
	Interval time.Duration // default: 10m
}

// OverdueSweepService periodically counts tasks whose deadline has passed
// without reaching the completed status. Observational only: it logs the
// count and touches nothing.
type OverdueSweepService struct {
	config    OverdueSweepConfig
	taskRepo  repositories.TaskRepository
	scheduler scheduler.EventScheduler
}

func NewOverdueSweepService(
	config OverdueSweepConfig,
	taskRepo repositories.TaskRepository,
	eventScheduler scheduler.EventScheduler,
) *OverdueSweepService {
	service := &OverdueSweepService{
		config:    config,
		taskRepo:  taskRepo,
		scheduler: eventScheduler,
	}

	if service.config.Interval == 0 {
		service.config.Interval = 10 * time.Minute
	}

	return service
}

// RegisterSweepJob registers the sweep with the scheduler.
func (s *OverdueSweepService) RegisterSweepJob() error {
	cronExpr := fmt.Sprintf("@every %s", s.config.Interval)
	return s.scheduler.AddJob("overdue_sweep", cronExpr, func() {
		ctx := context.Background()
		s.RunSweep(ctx)
	})
}

// RunSweep performs one sweep iteration.
func (s *OverdueSweepService) RunSweep(ctx context.Context) {
	count, err := s.taskRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "Overdue sweep failed", "error", err)
		return
	}

	if count > 0 {
		logger.InfoContext(ctx, "Overdue sweep completed", "overdue_tasks", count)
	}
}
