package timer

import (
	"time"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

// Effect is a side-effect intent returned by machine operations. The
// machine itself never plays sounds, shows notifications or touches
// timers; the caller executes the intents it gets back.
type Effect interface {
	effect()
}

// Cue identifies an audio cue
type Cue string

const (
	CueStart    Cue = "start"
	CueComplete Cue = "complete"
)

// PlayCue asks the caller to play an audio cue
type PlayCue struct {
	Cue Cue
}

// NotifyLevel grades a notification
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifySuccess
	NotifyWarn
	NotifyError
)

// Notify asks the caller to surface a message to the user
type Notify struct {
	Level   NotifyLevel
	Message string
}

// RefreshStats asks the caller to re-fetch statistics from the server
type RefreshStats struct{}

// ScheduleTransition asks the caller to advance the machine to the next
// mode after a delay. Manual operations arriving before the delay fires
// must cancel it.
type ScheduleTransition struct {
	To        model.SessionType
	AutoStart bool
	After     time.Duration
}

func (PlayCue) effect()            {}
func (Notify) effect()             {}
func (RefreshStats) effect()       {}
func (ScheduleTransition) effect() {}
