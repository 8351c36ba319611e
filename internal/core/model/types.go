package model

import (
	"fmt"
	"time"
)

// SessionType identifies the kind of pomodoro session on the wire
type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

// IsBreak reports whether the session type is one of the break kinds
func (s SessionType) IsBreak() bool {
	return s == SessionShortBreak || s == SessionLongBreak
}

// Valid reports whether the value is one of the known wire strings
func (s SessionType) Valid() bool {
	switch s {
	case SessionWork, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

// WireTime wraps time.Time to accept the backend's timestamp formats.
// The server emits naive ISO 8601 strings without a zone suffix; RFC 3339
// is also accepted for forward compatibility. Naive values are read as UTC.
type WireTime struct {
	time.Time
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (w *WireTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		w.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp value: %s", s)
	}
	s = s[1 : len(s)-1]

	var lastErr error
	for _, layout := range wireTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Location() == time.UTC || layout == time.RFC3339 || layout == time.RFC3339Nano {
				w.Time = t
			} else {
				w.Time = t.UTC()
			}
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("unrecognized timestamp %q: %w", s, lastErr)
}

func (w WireTime) MarshalJSON() ([]byte, error) {
	if w.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + w.Time.UTC().Format("2006-01-02T15:04:05.999999") + `"`), nil
}

// Session is a pomodoro session record as the server stores it.
// A session with no ended_at is still open.
type Session struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id,omitempty"`
	TaskID          *int64      `json:"task_id"`
	SessionType     SessionType `json:"session_type"`
	DurationMinutes float64     `json:"duration_minutes"`
	StartedAt       WireTime    `json:"started_at"`
	EndedAt         *WireTime   `json:"ended_at"`
	CreatedAt       *WireTime   `json:"created_at,omitempty"`
}

// Closed reports whether the session has been ended on the server
func (s Session) Closed() bool {
	return s.EndedAt != nil && !s.EndedAt.IsZero()
}

// Task is a todo item owned by the authenticated user
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt *WireTime `json:"created_at,omitempty"`
	UpdatedAt *WireTime `json:"updated_at,omitempty"`
}

// User is the authenticated account as reported by /api/user
type User struct {
	ID            int64     `json:"id,omitempty"`
	Email         string    `json:"email"`
	CreatedAt     *WireTime `json:"created_at,omitempty"`
	HasGoogleAuth bool      `json:"has_google_auth,omitempty"`
}

// TaskStatistics is the per-task breakdown inside a statistics payload
type TaskStatistics struct {
	TaskID        int64   `json:"task_id"`
	TaskText      string  `json:"task_text"`
	TotalMinutes  float64 `json:"total_minutes"`
	FullPomodoros int     `json:"full_pomodoros"`
	HalfPomodoros int     `json:"half_pomodoros"`
	FullMinutes   float64 `json:"full_minutes"`
	HalfMinutes   float64 `json:"half_minutes"`
}

// Statistics is the aggregate payload for one period
type Statistics struct {
	Period                 string           `json:"period"`
	TotalWorkMinutes       float64          `json:"total_work_minutes"`
	TotalShortBreakMinutes float64          `json:"total_short_break_minutes"`
	TotalLongBreakMinutes  float64          `json:"total_long_break_minutes"`
	TotalPomodoros         int              `json:"total_pomodoros"`
	FullPomodoros          int              `json:"full_pomodoros"`
	HalfPomodoros          int              `json:"half_pomodoros"`
	TaskStatistics         []TaskStatistics `json:"task_statistics"`
	Sessions               []Session        `json:"sessions"`
}
