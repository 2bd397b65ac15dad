package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

func TestListTasksDecodesEnvelope(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tasks" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != models.StatusPending {
			t.Fatalf("unexpected status query: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": id, "title": "From server", "status": models.StatusPending, "priority": 2},
			},
			"meta": map[string]any{"total": 1, "page": 1, "limit": 10, "totalPages": 1},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	tasks, meta, err := client.ListTasks(context.Background(), 1, 10, models.StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "From server" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if meta.Total != 1 || meta.TotalPages != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestCreateTaskSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var req dto.CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Title != "New task" {
			t.Fatalf("unexpected title: %q", req.Title)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": uuid.New(), "title": req.Title, "status": models.StatusPending},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	task, err := client.CreateTask(context.Background(), dto.CreateTaskRequest{Title: "New task"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "New task" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
}

func TestErrorEnvelopeSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "NOT_FOUND", "message": "Task not found"},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	_, err := client.ToggleTask(context.Background(), uuid.NewString())
	if err == nil {
		t.Fatal("expected error from 404 response")
	}
	if got := err.Error(); got == "" {
		t.Fatal("error must carry the server message")
	}
}

func TestDeleteTask(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Task deleted successfully"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	if err := client.DeleteTask(context.Background(), uuid.NewString()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !called {
		t.Fatal("expected request to be sent")
	}
}
