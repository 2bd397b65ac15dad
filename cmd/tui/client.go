package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"todo-api/domain/dto"
)

// APIClient is a thin typed client for the task API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type taskEnvelope struct {
	Success bool             `json:"success"`
	Data    dto.TaskResponse `json:"data"`
	Error   *apiError        `json:"error"`
}

type listMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listEnvelope struct {
	Success bool               `json:"success"`
	Data    []dto.TaskResponse `json:"data"`
	Meta    listMeta           `json:"meta"`
	Error   *apiError          `json:"error"`
}

type statsEnvelope struct {
	Success bool                  `json:"success"`
	Data    dto.TaskStatsResponse `json:"data"`
	Error   *apiError             `json:"error"`
}

func (c *APIClient) ListTasks(ctx context.Context, page, limit int, status string) ([]dto.TaskResponse, listMeta, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", status)
	}

	var envelope listEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?"+query.Encode(), nil, &envelope); err != nil {
		return nil, listMeta{}, err
	}
	if envelope.Error != nil {
		return nil, listMeta{}, fmt.Errorf("%s", envelope.Error.Message)
	}
	return envelope.Data, envelope.Meta, nil
}

func (c *APIClient) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error) {
	return c.taskRequest(ctx, http.MethodPost, "/api/v1/tasks", req)
}

func (c *APIClient) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (dto.TaskResponse, error) {
	return c.taskRequest(ctx, http.MethodPut, "/api/v1/tasks/"+id, req)
}

func (c *APIClient) ToggleTask(ctx context.Context, id string) (dto.TaskResponse, error) {
	return c.taskRequest(ctx, http.MethodPatch, "/api/v1/tasks/"+id+"/toggle", nil)
}

func (c *APIClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, nil)
}

func (c *APIClient) GetStats(ctx context.Context) (dto.TaskStatsResponse, error) {
	var envelope statsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/stats", nil, &envelope); err != nil {
		return dto.TaskStatsResponse{}, err
	}
	if envelope.Error != nil {
		return dto.TaskStatsResponse{}, fmt.Errorf("%s", envelope.Error.Message)
	}
	return envelope.Data, nil
}

func (c *APIClient) taskRequest(ctx context.Context, method, path string, body any) (dto.TaskResponse, error) {
	var envelope taskEnvelope
	if err := c.do(ctx, method, path, body, &envelope); err != nil {
		return dto.TaskResponse{}, err
	}
	if envelope.Error != nil {
		return dto.TaskResponse{}, fmt.Errorf("%s", envelope.Error.Message)
	}
	return envelope.Data, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var failed struct {
			Error *apiError `json:"error"`
		}
		if err := json.Unmarshal(data, &failed); err == nil && failed.Error != nil {
			return fmt.Errorf("%s", failed.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(data, target)
}
