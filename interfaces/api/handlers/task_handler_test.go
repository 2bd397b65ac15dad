package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/services"
	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/routes"
)

type stubService struct {
	createFn func(req *dto.CreateTaskRequest) (*models.Task, error)
	getFn    func(id uuid.UUID) (*models.Task, error)
	listFn   func(filter *dto.TaskFilterRequest) (*services.TaskListResult, error)
	updateFn func(id uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	toggleFn func(id uuid.UUID) (*models.Task, error)
	deleteFn func(id uuid.UUID) error
	statsFn  func() (*dto.TaskStatsResponse, error)

	createCalls int
}

func (s *stubService) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	s.createCalls++
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(req)
}

func (s *stubService) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if s.getFn == nil {
		return nil, services.ErrTaskNotFound
	}
	return s.getFn(id)
}

func (s *stubService) ListTasks(ctx context.Context, filter *dto.TaskFilterRequest) (*services.TaskListResult, error) {
	if s.listFn == nil {
		return &services.TaskListResult{Page: 1, Limit: 10, TotalPages: 1}, nil
	}
	return s.listFn(filter)
}

func (s *stubService) UpdateTask(ctx context.Context, id uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if s.updateFn == nil {
		return nil, services.ErrTaskNotFound
	}
	return s.updateFn(id, req)
}

func (s *stubService) ToggleTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if s.toggleFn == nil {
		return nil, services.ErrTaskNotFound
	}
	return s.toggleFn(id)
}

func (s *stubService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn == nil {
		return services.ErrTaskNotFound
	}
	return s.deleteFn(id)
}

func (s *stubService) GetStats(ctx context.Context) (*dto.TaskStatsResponse, error) {
	if s.statsFn == nil {
		return &dto.TaskStatsResponse{}, nil
	}
	return s.statsFn()
}

func newTestApp(svc services.TaskService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	routes.SetupTaskRoutes(api, handlers.NewHandlers(&handlers.Services{TaskService: svc}))
	return app
}

func sampleTask() *models.Task {
	now := time.Now()
	return &models.Task{
		ID:        uuid.New(),
		Title:     "Buy groceries",
		Status:    models.StatusPending,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int   `json:"totalPages"`
		HasNext    bool  `json:"hasNext"`
		HasPrev    bool  `json:"hasPrev"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestCreateTaskReturnsCreated(t *testing.T) {
	task := sampleTask()
	svc := &stubService{
		createFn: func(req *dto.CreateTaskRequest) (*models.Task, error) {
			task.Title = req.Title
			return task, nil
		},
	}
	app := newTestApp(svc)

	body, _ := json.Marshal(fiber.Map{"title": "Buy groceries"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if !env.Success {
		t.Fatal("expected success envelope")
	}

	var created dto.TaskResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if created.Title != "Buy groceries" {
		t.Fatalf("unexpected title: %q", created.Title)
	}
	if created.Completed {
		t.Fatal("new task must not be completed")
	}
}

func TestCreateTaskEmptyTitleRejectedBeforeService(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	body, _ := json.Marshal(fiber.Map{"title": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if env.Success {
		t.Fatal("expected error envelope")
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", env.Error)
	}
	if svc.createCalls != 0 {
		t.Fatal("service must not be called for invalid input")
	}
}

func TestCreateTaskTitleTooLong(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	long := make([]byte, 61)
	for i := range long {
		long[i] = 'a'
	}
	body, _ := json.Marshal(fiber.Map{"title": string(long)})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if svc.createCalls != 0 {
		t.Fatal("service must not be called for invalid input")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(id uuid.UUID) (*models.Task, error) {
			return nil, services.ErrTaskNotFound
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %+v", env.Error)
	}
}

func TestGetTaskInvalidID(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/not-a-uuid", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if env.Error == nil || env.Error.Code != "BAD_REQUEST" {
		t.Fatalf("expected BAD_REQUEST, got %+v", env.Error)
	}
}

func TestListTasksPaginationMeta(t *testing.T) {
	tasks := []*models.Task{sampleTask(), sampleTask()}
	svc := &stubService{
		listFn: func(filter *dto.TaskFilterRequest) (*services.TaskListResult, error) {
			return &services.TaskListResult{
				Tasks:      tasks,
				Total:      12,
				Page:       2,
				Limit:      2,
				TotalPages: 6,
			}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/?page=2&limit=2", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if env.Meta == nil {
		t.Fatal("expected pagination meta")
	}
	if env.Meta.Total != 12 || env.Meta.Page != 2 || env.Meta.TotalPages != 6 {
		t.Fatalf("unexpected meta: %+v", env.Meta)
	}
	if !env.Meta.HasNext || !env.Meta.HasPrev {
		t.Fatalf("expected hasNext and hasPrev on a middle page: %+v", env.Meta)
	}
}

func TestListTasksInvalidStatusFilter(t *testing.T) {
	svc := &stubService{
		listFn: func(filter *dto.TaskFilterRequest) (*services.TaskListResult, error) {
			return nil, services.ErrInvalidStatus
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/?status=archived", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestToggleTask(t *testing.T) {
	task := sampleTask()
	task.Status = models.StatusCompleted
	svc := &stubService{
		toggleFn: func(id uuid.UUID) (*models.Task, error) {
			if id != task.ID {
				t.Fatalf("unexpected id: %s", id)
			}
			return task, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/"+task.ID.String()+"/toggle", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	var toggled dto.TaskResponse
	if err := json.Unmarshal(env.Data, &toggled); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected derived completed flag set")
	}
}

func TestDeleteTask(t *testing.T) {
	svc := &stubService{
		deleteFn: func(id uuid.UUID) error { return nil },
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/"+uuid.NewString(), nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestGetStats(t *testing.T) {
	svc := &stubService{
		statsFn: func() (*dto.TaskStatsResponse, error) {
			return &dto.TaskStatsResponse{
				Total:          4,
				ByStatus:       map[string]int64{models.StatusCompleted: 2},
				ByPriority:     map[string]int64{"high": 1},
				Overdue:        1,
				CompletionRate: 0.5,
			}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/stats", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	var stats dto.TaskStatsResponse
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if stats.Total != 4 || stats.CompletionRate != 0.5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}

	var env envelope
	decodeBody(t, res, &env)
	if env.Error == nil || env.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("expected METHOD_NOT_ALLOWED, got %+v", env.Error)
	}
}
