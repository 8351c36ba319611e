package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

type sessionResponse struct {
	envelope
	Session model.Session `json:"session"`
}

type statisticsResponse struct {
	envelope
	Statistics model.Statistics `json:"statistics"`
}

type startSessionRequest struct {
	SessionType model.SessionType `json:"session_type"`
	TaskID      *int64            `json:"task_id,omitempty"`
}

type endSessionRequest struct {
	SessionID       int64   `json:"session_id"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// OpenSession starts a session on the server and returns the stored record.
// Work sessions require a task id; break sessions ignore it.
func (c *Client) OpenSession(ctx context.Context, sessionType model.SessionType, taskID *int64) (model.Session, error) {
	req := startSessionRequest{SessionType: sessionType}
	if sessionType == model.SessionWork {
		req.TaskID = taskID
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/pomodoro/start", req, &resp); err != nil {
		return model.Session{}, err
	}
	return resp.Session, nil
}

// CloseSession ends a session, recording the elapsed duration in minutes
func (c *Client) CloseSession(ctx context.Context, sessionID int64, durationMinutes float64) (model.Session, error) {
	var resp sessionResponse
	req := endSessionRequest{SessionID: sessionID, DurationMinutes: durationMinutes}
	if err := c.do(ctx, http.MethodPost, "/api/pomodoro/end", req, &resp); err != nil {
		return model.Session{}, err
	}
	return resp.Session, nil
}

// Statistics fetches the aggregate payload for the given period
// (daily, weekly or monthly)
func (c *Client) Statistics(ctx context.Context, period string) (model.Statistics, error) {
	var resp statisticsResponse
	path := "/api/pomodoro/statistics?" + url.Values{"period": {period}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return model.Statistics{}, err
	}
	return resp.Statistics, nil
}
