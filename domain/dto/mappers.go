package dto

import (
	"todo-api/domain/models"
)

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	subtasks := make([]SubTaskResponse, len(task.Subtasks))
	for i, st := range task.Subtasks {
		subtasks[i] = SubTaskResponse{
			ID:        st.ID,
			Title:     st.Title,
			Completed: st.Completed,
		}
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Completed:   task.Completed(),
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		Subtasks:    subtasks,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}
	return responses
}

func SubTaskRequestsToSubTasks(reqs []SubTaskRequest) []models.SubTask {
	subtasks := make([]models.SubTask, len(reqs))
	for i, req := range reqs {
		subtasks[i] = models.SubTask{
			ID:        req.ID,
			Title:     req.Title,
			Completed: req.Completed,
		}
	}
	return subtasks
}
