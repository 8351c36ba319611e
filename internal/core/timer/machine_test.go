package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

type openCall struct {
	sessionType model.SessionType
	taskID      *int64
}

type closeCall struct {
	sessionID       int64
	durationMinutes float64
}

type fakeService struct {
	opens     []openCall
	closes    []closeCall
	nextID    int64
	openErr   error
	closeErrs []error
}

func (f *fakeService) Open(ctx context.Context, sessionType model.SessionType, taskID *int64) (int64, error) {
	f.opens = append(f.opens, openCall{sessionType: sessionType, taskID: taskID})
	if f.openErr != nil {
		return 0, f.openErr
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeService) Close(ctx context.Context, sessionID int64, durationMinutes float64) error {
	f.closes = append(f.closes, closeCall{sessionID: sessionID, durationMinutes: durationMinutes})
	if len(f.closeErrs) == 0 {
		return nil
	}
	err := f.closeErrs[0]
	f.closeErrs = f.closeErrs[1:]
	return err
}

type fakeTasks struct {
	incomplete int
	selectedID int64
	selected   bool
}

func (f *fakeTasks) IncompleteCount() int { return f.incomplete }

func (f *fakeTasks) SelectedTaskID() (int64, bool) { return f.selectedID, f.selected }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Durations = map[model.SessionType]int{
		model.SessionWork:       4,
		model.SessionShortBreak: 2,
		model.SessionLongBreak:  3,
	}
	return cfg
}

func findNotify(effects []Effect) (Notify, bool) {
	for _, e := range effects {
		if n, ok := e.(Notify); ok {
			return n, true
		}
	}
	return Notify{}, false
}

func findTransition(effects []Effect) (ScheduleTransition, bool) {
	for _, e := range effects {
		if tr, ok := e.(ScheduleTransition); ok {
			return tr, true
		}
	}
	return ScheduleTransition{}, false
}

func hasCue(effects []Effect, cue Cue) bool {
	for _, e := range effects {
		if pc, ok := e.(PlayCue); ok && pc.Cue == cue {
			return true
		}
	}
	return false
}

func hasNotifyLevel(effects []Effect, level NotifyLevel) bool {
	for _, e := range effects {
		if n, ok := e.(Notify); ok && n.Level == level {
			return true
		}
	}
	return false
}

func hasRefresh(effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(RefreshStats); ok {
			return true
		}
	}
	return false
}

func TestDefaultDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1500, cfg.Durations[model.SessionWork])
	assert.Equal(t, 300, cfg.Durations[model.SessionShortBreak])
	assert.Equal(t, 900, cfg.Durations[model.SessionLongBreak])
	assert.Equal(t, 2*time.Second, cfg.TransitionDelay)
}

func TestStartWithoutEligibleTasks(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{incomplete: 0}, testConfig())

	_, err := m.Start(context.Background())
	assert.ErrorIs(t, err, ErrNoEligibleTask)
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, svc.opens)
}

func TestStartWithoutSelection(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{incomplete: 2}, testConfig())

	_, err := m.Start(context.Background())
	assert.ErrorIs(t, err, ErrNoTaskSelected)
	assert.Equal(t, StateAwaitingSelection, m.State())
	assert.Empty(t, svc.opens)
}

func TestStartWorkSession(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 2, selectedID: 7, selected: true}
	m := NewMachine(svc, tasks, testConfig())

	effects, err := m.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateRunning, m.State())
	assert.True(t, hasCue(effects, CueStart))

	id, ok := m.ActiveSessionID()
	require.True(t, ok, "running state must carry an active session")
	assert.Equal(t, int64(1), id)

	require.Len(t, svc.opens, 1)
	assert.Equal(t, model.SessionWork, svc.opens[0].sessionType)
	require.NotNil(t, svc.opens[0].taskID)
	assert.Equal(t, int64(7), *svc.opens[0].taskID)
}

func TestStartFromAwaitingSelection(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1}
	m := NewMachine(svc, tasks, testConfig())

	_, err := m.Start(context.Background())
	require.ErrorIs(t, err, ErrNoTaskSelected)

	tasks.selectedID = 3
	tasks.selected = true
	_, err = m.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateRunning, m.State())
}

func TestStartBreakNeedsNoTask(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{}, testConfig())

	_, err := m.SetMode(model.SessionShortBreak)
	require.NoError(t, err)

	_, err = m.Start(context.Background())
	require.NoError(t, err)

	require.Len(t, svc.opens, 1)
	assert.Equal(t, model.SessionShortBreak, svc.opens[0].sessionType)
	assert.Nil(t, svc.opens[0].taskID)
}

func TestStartOpenFailure(t *testing.T) {
	svc := &fakeService{openErr: errors.New("connection refused")}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	m := NewMachine(svc, tasks, testConfig())

	_, err := m.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateIdle, m.State())

	_, ok := m.ActiveSessionID()
	assert.False(t, ok)
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	m := NewMachine(svc, tasks, testConfig())

	_, err := m.Start(context.Background())
	require.NoError(t, err)
	_, err = m.Start(context.Background())
	require.NoError(t, err)

	assert.Len(t, svc.opens, 1)
}

func TestStopAndResume(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	m := NewMachine(svc, tasks, testConfig())

	_, err := m.Start(context.Background())
	require.NoError(t, err)

	_, err = m.Tick(context.Background())
	require.NoError(t, err)
	remaining := m.Remaining()

	_, err = m.Stop()
	require.NoError(t, err)
	assert.Equal(t, StatePaused, m.State())

	// Paused clock does not move
	_, err = m.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remaining, m.Remaining())

	// Resume keeps the same session open
	_, err = m.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateRunning, m.State())
	assert.Len(t, svc.opens, 1)

	id, ok := m.ActiveSessionID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	m := NewMachine(&fakeService{}, &fakeTasks{}, testConfig())
	_, err := m.Stop()
	assert.NoError(t, err)
	assert.Equal(t, StateIdle, m.State())
}

func TestNaturalWorkCompletion(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)

	var effects []Effect
	for i := 0; i < cfg.Durations[model.SessionWork]; i++ {
		effects, err = m.Tick(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 0, m.Remaining())

	_, ok := m.ActiveSessionID()
	assert.False(t, ok)

	require.Len(t, svc.closes, 1)
	assert.Equal(t, int64(1), svc.closes[0].sessionID)
	assert.InDelta(t, float64(cfg.Durations[model.SessionWork])/60.0, svc.closes[0].durationMinutes, 1e-9)

	assert.True(t, hasCue(effects, CueComplete))
	assert.True(t, hasRefresh(effects))

	transition, ok := findTransition(effects)
	require.True(t, ok)
	assert.Equal(t, model.SessionShortBreak, transition.To)
	assert.True(t, transition.AutoStart)
	assert.Equal(t, cfg.TransitionDelay, transition.After)

	notify, ok := findNotify(effects)
	require.True(t, ok)
	assert.Equal(t, NotifySuccess, notify.Level)
}

func TestNaturalBreakCompletion(t *testing.T) {
	svc := &fakeService{}
	cfg := testConfig()
	m := NewMachine(svc, &fakeTasks{}, cfg)

	ctx := context.Background()
	_, err := m.SetMode(model.SessionLongBreak)
	require.NoError(t, err)
	_, err = m.Start(ctx)
	require.NoError(t, err)

	var effects []Effect
	for i := 0; i < cfg.Durations[model.SessionLongBreak]; i++ {
		effects, err = m.Tick(ctx)
		require.NoError(t, err)
	}

	transition, ok := findTransition(effects)
	require.True(t, ok)
	assert.Equal(t, model.SessionWork, transition.To)
	assert.False(t, transition.AutoStart, "breaks must not auto-start the next work session")

	// Only work completions ring the cue; a break ends quietly
	assert.False(t, hasCue(effects, CueComplete))
	notify, ok := findNotify(effects)
	require.True(t, ok)
	assert.Equal(t, NotifyInfo, notify.Level)
}

func TestFinishRecordsElapsed(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)

	_, err = m.Tick(ctx)
	require.NoError(t, err)
	_, err = m.Tick(ctx)
	require.NoError(t, err)

	effects, err := m.Finish(ctx)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, cfg.Durations[model.SessionWork], m.Remaining())
	assert.True(t, hasRefresh(effects))

	// Finishing a work session rings the cue and confirms the save
	assert.True(t, hasCue(effects, CueComplete))
	assert.True(t, hasNotifyLevel(effects, NotifySuccess))

	require.Len(t, svc.closes, 1)
	assert.InDelta(t, 2.0/60.0, svc.closes[0].durationMinutes, 1e-9)

	_, ok := m.ActiveSessionID()
	assert.False(t, ok)
}

func TestFinishBreakPlaysNoCue(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{}, testConfig())

	ctx := context.Background()
	_, err := m.SetMode(model.SessionShortBreak)
	require.NoError(t, err)
	_, err = m.Start(ctx)
	require.NoError(t, err)
	_, err = m.Tick(ctx)
	require.NoError(t, err)

	effects, err := m.Finish(ctx)
	require.NoError(t, err)

	assert.False(t, hasCue(effects, CueComplete))
	assert.True(t, hasNotifyLevel(effects, NotifySuccess))
	assert.Len(t, svc.closes, 1)
}

func TestFinishFromPaused(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	m := NewMachine(svc, tasks, testConfig())

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)
	_, err = m.Tick(ctx)
	require.NoError(t, err)
	_, err = m.Stop()
	require.NoError(t, err)

	_, err = m.Finish(ctx)
	require.NoError(t, err)
	assert.Len(t, svc.closes, 1)
}

func TestFinishWithoutSession(t *testing.T) {
	m := NewMachine(&fakeService{}, &fakeTasks{}, testConfig())
	_, err := m.Finish(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSetModeResetsClockKeepsSession(t *testing.T) {
	svc := &fakeService{}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)
	_, err = m.Tick(ctx)
	require.NoError(t, err)

	_, err = m.SetMode(model.SessionLongBreak)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, model.SessionLongBreak, m.Mode())
	assert.Equal(t, cfg.Durations[model.SessionLongBreak], m.Remaining())

	// The open session is not closed by a mode switch
	assert.Empty(t, svc.closes)
	_, ok := m.ActiveSessionID()
	assert.True(t, ok)
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	m := NewMachine(&fakeService{}, &fakeTasks{}, testConfig())
	_, err := m.SetMode(model.SessionType("nap"))
	assert.Error(t, err)
}

func TestCloseFailureClearAndWarn(t *testing.T) {
	svc := &fakeService{closeErrs: []error{errors.New("boom")}}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	cfg.ClosePolicy = PolicyClearAndWarn
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)
	_, err = m.Tick(ctx)
	require.NoError(t, err)

	effects, err := m.Finish(ctx)
	require.NoError(t, err)

	// One attempt, local state cleared, failure surfaced as an error
	assert.Len(t, svc.closes, 1)
	_, ok := m.ActiveSessionID()
	assert.False(t, ok)

	assert.True(t, hasNotifyLevel(effects, NotifyError))
	assert.False(t, hasNotifyLevel(effects, NotifySuccess),
		"a failed save must not be confirmed as recorded")
}

func TestCloseFailureRetryThenClear(t *testing.T) {
	svc := &fakeService{closeErrs: []error{errors.New("boom")}}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	cfg.ClosePolicy = PolicyRetryThenClear
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)

	effects, err := m.Finish(ctx)
	require.NoError(t, err)

	// Retry succeeded, no error surfaced
	assert.Len(t, svc.closes, 2)
	assert.False(t, hasNotifyLevel(effects, NotifyError))
	assert.True(t, hasNotifyLevel(effects, NotifySuccess))
}

func TestCloseFailureRetryExhausted(t *testing.T) {
	svc := &fakeService{closeErrs: []error{errors.New("boom"), errors.New("boom again")}}
	tasks := &fakeTasks{incomplete: 1, selectedID: 1, selected: true}
	cfg := testConfig()
	cfg.ClosePolicy = PolicyRetryThenClear
	m := NewMachine(svc, tasks, cfg)

	ctx := context.Background()
	_, err := m.Start(ctx)
	require.NoError(t, err)

	effects, err := m.Finish(ctx)
	require.NoError(t, err)

	assert.Len(t, svc.closes, 2)
	assert.True(t, hasNotifyLevel(effects, NotifyError))
	assert.False(t, hasNotifyLevel(effects, NotifySuccess))

	_, hasSession := m.ActiveSessionID()
	assert.False(t, hasSession)
}

func TestAutoAdvanceToBreakStartsSession(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{}, testConfig())

	effects, err := m.AutoAdvance(context.Background(), model.SessionShortBreak, true)
	require.NoError(t, err)

	assert.Equal(t, StateRunning, m.State())
	assert.Equal(t, model.SessionShortBreak, m.Mode())
	assert.True(t, hasCue(effects, CueStart))
	require.Len(t, svc.opens, 1)
	assert.Equal(t, model.SessionShortBreak, svc.opens[0].sessionType)
}

func TestAutoAdvanceToWorkStaysIdle(t *testing.T) {
	svc := &fakeService{}
	m := NewMachine(svc, &fakeTasks{incomplete: 1}, testConfig())

	_, err := m.AutoAdvance(context.Background(), model.SessionWork, false)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, model.SessionWork, m.Mode())
	assert.Empty(t, svc.opens)
}
