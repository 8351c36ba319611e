package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/pomotrack/pomotrack/internal/core/model"
	"github.com/pomotrack/pomotrack/internal/util"
)

// State is the machine's lifecycle state
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateAwaitingSelection
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateAwaitingSelection:
		return "awaiting selection"
	default:
		return "unknown"
	}
}

// ClosePolicy controls what happens when closing a session on the server
// fails. Either way the local session reference is cleared so the timer
// stays usable; the policies differ in how hard they try first.
type ClosePolicy int

const (
	// PolicyClearAndWarn drops the local reference after the first
	// failure and surfaces the error to the user
	PolicyClearAndWarn ClosePolicy = iota

	// PolicyRetryThenClear retries the close once before giving up
	PolicyRetryThenClear
)

// SessionService opens and closes sessions on the backend
type SessionService interface {
	Open(ctx context.Context, sessionType model.SessionType, taskID *int64) (int64, error)
	Close(ctx context.Context, sessionID int64, durationMinutes float64) error
}

// TaskProvider answers the task questions a work session start asks
type TaskProvider interface {
	IncompleteCount() int
	SelectedTaskID() (int64, bool)
}

// Config holds the machine's tunables
type Config struct {
	Durations       map[model.SessionType]int
	ClosePolicy     ClosePolicy
	TransitionDelay time.Duration
}

// DefaultConfig returns the standard pomodoro durations with a two
// second pause before auto-transitions
func DefaultConfig() Config {
	return Config{
		Durations: map[model.SessionType]int{
			model.SessionWork:       1500,
			model.SessionShortBreak: 300,
			model.SessionLongBreak:  900,
		},
		ClosePolicy:     PolicyClearAndWarn,
		TransitionDelay: 2 * time.Second,
	}
}

// Machine is the session timer state machine. Operations mutate local
// state, call the session service where the lifecycle demands it, and
// return side-effect intents for the caller to execute. While the state
// is StateRunning an active session id is always set.
type Machine struct {
	cfg   Config
	svc   SessionService
	tasks TaskProvider

	state      State
	mode       model.SessionType
	remaining  int
	elapsed    int
	sessionID  int64
	hasSession bool
}

// NewMachine creates a machine in work mode, idle, with a full clock
func NewMachine(svc SessionService, tasks TaskProvider, cfg Config) *Machine {
	m := &Machine{
		cfg:   cfg,
		svc:   svc,
		tasks: tasks,
		mode:  model.SessionWork,
	}
	m.remaining = m.duration(m.mode)
	return m
}

func (m *Machine) duration(mode model.SessionType) int {
	return m.cfg.Durations[mode]
}

// State returns the current lifecycle state
func (m *Machine) State() State { return m.state }

// Mode returns the current session mode
func (m *Machine) Mode() model.SessionType { return m.mode }

// Remaining returns the seconds left on the clock
func (m *Machine) Remaining() int { return m.remaining }

// Elapsed returns the seconds counted since the session started
func (m *Machine) Elapsed() int { return m.elapsed }

// ActiveSessionID returns the open session's id, if one is open
func (m *Machine) ActiveSessionID() (int64, bool) {
	return m.sessionID, m.hasSession
}

// Start begins or resumes the countdown. A fresh work start requires an
// incomplete, selected task and opens a session on the server; break
// starts open a session without a task. Resuming from pause touches no
// session state.
func (m *Machine) Start(ctx context.Context) ([]Effect, error) {
	switch m.state {
	case StateRunning:
		return nil, nil
	case StatePaused:
		m.state = StateRunning
		return nil, nil
	}

	var taskID *int64
	if m.mode == model.SessionWork {
		if m.tasks.IncompleteCount() == 0 {
			return nil, ErrNoEligibleTask
		}
		id, ok := m.tasks.SelectedTaskID()
		if !ok {
			m.state = StateAwaitingSelection
			return nil, ErrNoTaskSelected
		}
		taskID = &id
	}

	sessionID, err := m.svc.Open(ctx, m.mode, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s session: %w", m.mode, err)
	}

	m.sessionID = sessionID
	m.hasSession = true
	m.state = StateRunning
	m.remaining = m.duration(m.mode)
	m.elapsed = 0

	util.LogDebugf("Session %d opened (%s)", sessionID, m.mode)
	return []Effect{PlayCue{Cue: CueStart}}, nil
}

// Stop pauses a running countdown. The open session stays open so the
// elapsed time keeps counting toward it on resume.
func (m *Machine) Stop() ([]Effect, error) {
	if m.state != StateRunning {
		return nil, nil
	}
	m.state = StatePaused
	return nil, nil
}

// Finish ends the session early, recording the elapsed minutes, and
// resets the clock for the current mode. Only a finished work session
// rings the complete cue.
func (m *Machine) Finish(ctx context.Context) ([]Effect, error) {
	if !m.hasSession {
		return nil, ErrNoActiveSession
	}

	finished := m.mode
	effects, saved := m.closeActive(ctx, float64(m.elapsed)/60.0)
	m.reset(m.mode)
	if finished == model.SessionWork {
		effects = append(effects, PlayCue{Cue: CueComplete})
	}
	if saved {
		effects = append(effects, Notify{Level: NotifySuccess, Message: "Session recorded"})
	}
	effects = append(effects, RefreshStats{})
	return effects, nil
}

// SetMode switches the timer to another mode and resets the clock. The
// countdown stops but an open session is kept; callers cancel any
// pending auto-transition before switching.
func (m *Machine) SetMode(mode model.SessionType) ([]Effect, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown session mode: %s", mode)
	}
	m.mode = mode
	m.remaining = m.duration(mode)
	m.elapsed = 0
	m.state = StateIdle
	return nil, nil
}

// Tick advances the clock by one second. Reaching zero completes the
// session naturally: it is closed with the full mode duration, and the
// caller is asked to cue, notify, refresh stats and schedule the move
// to the next mode.
func (m *Machine) Tick(ctx context.Context) ([]Effect, error) {
	if m.state != StateRunning {
		return nil, nil
	}

	m.remaining--
	m.elapsed++
	if m.remaining > 0 {
		return nil, nil
	}

	completed := m.mode
	effects, _ := m.closeActive(ctx, float64(m.duration(completed))/60.0)
	m.state = StateIdle
	m.remaining = 0

	next := model.SessionWork
	autoStart := false
	level := NotifyInfo
	if completed == model.SessionWork {
		next = model.SessionShortBreak
		autoStart = true
		level = NotifySuccess
		effects = append(effects, PlayCue{Cue: CueComplete})
	}

	effects = append(effects,
		Notify{Level: level, Message: completionMessage(completed)},
		RefreshStats{},
		ScheduleTransition{To: next, AutoStart: autoStart, After: m.cfg.TransitionDelay},
	)
	return effects, nil
}

// AutoAdvance applies a scheduled transition: switch to the target mode
// and, for auto-started breaks, begin the countdown immediately
func (m *Machine) AutoAdvance(ctx context.Context, to model.SessionType, autoStart bool) ([]Effect, error) {
	if _, err := m.SetMode(to); err != nil {
		return nil, err
	}
	if !autoStart {
		return nil, nil
	}
	return m.Start(ctx)
}

// closeActive closes the open session, honoring the close policy. The
// local reference is cleared regardless; a failure surfaces as an error
// notification instead of blocking the timer. The second return reports
// whether the server accepted the close.
func (m *Machine) closeActive(ctx context.Context, durationMinutes float64) ([]Effect, bool) {
	sessionID := m.sessionID
	err := m.svc.Close(ctx, sessionID, durationMinutes)
	if err != nil && m.cfg.ClosePolicy == PolicyRetryThenClear {
		util.LogWarnf("Closing session %d failed, retrying: %v", sessionID, err)
		err = m.svc.Close(ctx, sessionID, durationMinutes)
	}

	m.sessionID = 0
	m.hasSession = false

	if err != nil {
		util.LogErrorf("Failed to close session %d: %v", sessionID, err)
		return []Effect{Notify{
			Level:   NotifyError,
			Message: "Session could not be saved to the server",
		}}, false
	}

	util.LogDebugf("Session %d closed (%.1f min)", sessionID, durationMinutes)
	return nil, true
}

func (m *Machine) reset(mode model.SessionType) {
	m.state = StateIdle
	m.remaining = m.duration(mode)
	m.elapsed = 0
}

func completionMessage(mode model.SessionType) string {
	if mode == model.SessionWork {
		return "Pomodoro complete, time for a break"
	}
	return "Break over, back to work"
}

// ModeLabel renders a mode for display
func ModeLabel(mode model.SessionType) string {
	switch mode {
	case model.SessionWork:
		return "Work"
	case model.SessionShortBreak:
		return "Short Break"
	case model.SessionLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}
