package main

import (
	"fmt"
	"strings"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

// taskItem wraps a task response to satisfy the list.DefaultItem interface.
type taskItem struct {
	task dto.TaskResponse
}

func (i taskItem) Title() string {
	check := "[ ]"
	if i.task.Completed {
		check = "[x]"
	}
	return fmt.Sprintf("%s %s %s", check, priorityMarker(i.task.Priority), i.task.Title)
}

func (i taskItem) Description() string {
	parts := []string{statusLabel(i.task.Status)}
	if i.task.Deadline != nil {
		parts = append(parts, "due "+i.task.Deadline.Format("2006-01-02"))
	}
	if n := len(i.task.Subtasks); n > 0 {
		done := 0
		for _, st := range i.task.Subtasks {
			if st.Completed {
				done++
			}
		}
		parts = append(parts, fmt.Sprintf("subtasks %d/%d", done, n))
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string {
	return i.task.Title
}

func priorityMarker(priority int) string {
	switch priority {
	case models.PriorityHigh:
		return "!!"
	case models.PriorityLow:
		return "  "
	default:
		return " !"
	}
}

func statusLabel(status string) string {
	switch status {
	case models.StatusInProgress:
		return "in progress"
	default:
		return status
	}
}
