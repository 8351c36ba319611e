package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

type tasksResponse struct {
	envelope
	Tasks []model.Task `json:"tasks"`
}

type taskResponse struct {
	envelope
	Task model.Task `json:"task"`
}

// TaskUpdate holds the fields a task update may change. Nil fields are
// left untouched on the server.
type TaskUpdate struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// ListTasks returns the user's tasks, newest first
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var resp tasksResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask adds a new task with the given text
func (c *Client) CreateTask(ctx context.Context, text string) (model.Task, error) {
	var resp taskResponse
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &resp); err != nil {
		return model.Task{}, err
	}
	return resp.Task, nil
}

// UpdateTask applies the given changes to a task
func (c *Client) UpdateTask(ctx context.Context, taskID int64, update TaskUpdate) (model.Task, error) {
	var resp taskResponse
	path := fmt.Sprintf("/api/tasks/%d", taskID)
	if err := c.do(ctx, http.MethodPut, path, update, &resp); err != nil {
		return model.Task{}, err
	}
	return resp.Task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	path := fmt.Sprintf("/api/tasks/%d", taskID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
