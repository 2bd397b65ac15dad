package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

func TestTaskToTaskResponse(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	task := &models.Task{
		ID:          uuid.New(),
		Title:       "Clean garage",
		Description: "before winter",
		Status:      models.StatusCompleted,
		Priority:    models.PriorityHigh,
		Deadline:    &deadline,
		Subtasks: []models.SubTask{
			{ID: "a", Title: "Shelves", Completed: true},
			{ID: "b", Title: "Floor"},
		},
	}

	res := TaskToTaskResponse(task)

	if res.ID != task.ID || res.Title != task.Title {
		t.Fatalf("identity fields mismatch: %+v", res)
	}
	if !res.Completed {
		t.Fatal("completed must be derived from status")
	}
	if len(res.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(res.Subtasks))
	}
	if !res.Subtasks[0].Completed || res.Subtasks[1].Completed {
		t.Fatalf("subtask flags mismatch: %+v", res.Subtasks)
	}
	if res.Deadline == nil || !res.Deadline.Equal(deadline) {
		t.Fatal("deadline mismatch")
	}
}

func TestTaskToTaskResponseNil(t *testing.T) {
	if TaskToTaskResponse(nil) != nil {
		t.Fatal("nil task must map to nil response")
	}
}

func TestTasksToTaskResponsesEmpty(t *testing.T) {
	responses := TasksToTaskResponses(nil)
	if responses == nil {
		t.Fatal("expected empty slice, not nil, so it serializes as []")
	}
	if len(responses) != 0 {
		t.Fatalf("expected empty slice, got %d", len(responses))
	}
}

func TestSubTaskRequestsToSubTasks(t *testing.T) {
	subtasks := SubTaskRequestsToSubTasks([]SubTaskRequest{
		{ID: "x", Title: "One", Completed: true},
		{Title: "Two"},
	})

	if len(subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(subtasks))
	}
	if subtasks[0].ID != "x" || !subtasks[0].Completed {
		t.Fatalf("first subtask mismatch: %+v", subtasks[0])
	}
	if subtasks[1].ID != "" {
		t.Fatal("missing ID must pass through empty, assignment happens later")
	}
}
