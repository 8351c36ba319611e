package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomotrack/pomotrack/internal/api"
	"github.com/pomotrack/pomotrack/internal/audio"
	"github.com/pomotrack/pomotrack/internal/core/model"
	"github.com/pomotrack/pomotrack/internal/core/task"
	"github.com/pomotrack/pomotrack/internal/core/timer"
	"github.com/pomotrack/pomotrack/internal/prefs"
	"github.com/pomotrack/pomotrack/internal/presentation/interaction"
	"github.com/pomotrack/pomotrack/internal/util"
)

var (
	timerMode       string
	timerRetryClose bool

	timerCmd = &cobra.Command{
		Use:   "timer",
		Short: "Run the interactive pomodoro timer",
		Long: `Run the interactive pomodoro timer. Work sessions are booked on the
selected task; finished sessions are recorded on the server and show up
in the statistics.

Keys:
  s  start / resume        p  pause
  f  finish early          m  switch mode
  t  select next task      r  refresh tasks and stats
  q  quit`,
		RunE: runTimer,
	}
)

func init() {
	timerCmd.Flags().StringVar(&timerMode, "mode", "work",
		"Initial timer mode (work, short, long)")
	timerCmd.Flags().BoolVar(&timerRetryClose, "retry-close", false,
		"Retry a failed session close once before giving up")
	rootCmd.AddCommand(timerCmd)
}

// transition is a scheduled mode change delivered back into the loop
type transition struct {
	to        model.SessionType
	autoStart bool
}

// timerApp owns the interactive loop state. The machine is only touched
// from the loop goroutine; the scheduler feeds transitions back through
// a channel instead of calling into it directly.
type timerApp struct {
	client      *api.Client
	machine     *timer.Machine
	scheduler   *timer.Scheduler
	tasks       *task.List
	player      audio.Player
	cfg         timer.Config
	header      string
	notice      string
	todayStats  string
	transitions chan transition
}

// sessionService adapts the API client to the machine's session calls
type sessionService struct {
	client *api.Client
}

func (s sessionService) Open(ctx context.Context, sessionType model.SessionType, taskID *int64) (int64, error) {
	session, err := s.client.OpenSession(ctx, sessionType, taskID)
	if err != nil {
		return 0, err
	}
	return session.ID, nil
}

func (s sessionService) Close(ctx context.Context, sessionID int64, durationMinutes float64) error {
	_, err := s.client.CloseSession(ctx, sessionID, durationMinutes)
	return err
}

func runTimer(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	mode, err := parseMode(timerMode)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	cfg := timer.DefaultConfig()
	if timerRetryClose {
		cfg.ClosePolicy = timer.PolicyRetryThenClear
	}

	app := &timerApp{
		client:      client,
		scheduler:   timer.NewScheduler(),
		tasks:       task.NewList(),
		cfg:         cfg,
		transitions: make(chan transition, 1),
	}
	app.machine = timer.NewMachine(sessionService{client: client}, app.tasks, cfg)

	ctx := context.Background()

	p, err := prefs.Load(expandPath(defaultPrefsFile))
	if err != nil {
		util.LogWarnf("Could not load preferences: %v", err)
		p = prefs.Default()
	}
	app.player = audio.NewBellPlayer(os.Stdout, p.Gain())

	app.loadUser(ctx)
	app.loadTasks(ctx)
	app.refreshToday(ctx)

	if _, err := app.machine.SetMode(mode); err != nil {
		return err
	}

	return app.run(ctx)
}

func (a *timerApp) run(ctx context.Context) error {
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to set up keyboard input: %w", err)
	}
	defer keyboard.Close()

	watcher, err := prefs.NewWatcher(expandPath(defaultPrefsFile))
	if err != nil {
		util.LogWarnf("Preferences watching disabled: %v", err)
	} else {
		defer watcher.Close()
	}
	var prefUpdates <-chan prefs.Prefs
	if watcher != nil {
		prefUpdates = watcher.Updates()
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Print(util.HideCursor)
	defer fmt.Print(util.ShowCursor)

	a.render()

	for {
		select {
		case <-ticker.C:
			effects, err := a.machine.Tick(ctx)
			if err != nil {
				a.notice = err.Error()
			}
			a.applyEffects(ctx, effects)
			a.render()

		case t := <-a.transitions:
			effects, err := a.machine.AutoAdvance(ctx, t.to, t.autoStart)
			if err != nil {
				a.notice = err.Error()
				util.LogWarnf("Auto transition failed: %v", err)
			}
			a.applyEffects(ctx, effects)
			a.render()

		case p := <-prefUpdates:
			a.player.SetGain(p.Gain())
			a.notice = "Preferences reloaded"
			a.render()

		case event := <-keyboard.Events():
			quit, err := a.handleKey(ctx, event)
			if err != nil {
				return err
			}
			if quit {
				return a.shutdown(ctx)
			}
			a.render()
		}
	}
}

func (a *timerApp) handleKey(ctx context.Context, event interaction.KeyEvent) (bool, error) {
	if event.Type == interaction.KeyEscape || event.Key == 'q' || event.Key == 3 {
		return true, nil
	}

	// Every manual operation preempts a pending auto-transition
	a.scheduler.Cancel()

	switch event.Key {
	case 's':
		effects, err := a.machine.Start(ctx)
		a.noteStartError(err)
		a.applyEffects(ctx, effects)
	case 'p':
		a.machine.Stop()
	case 'f':
		effects, err := a.machine.Finish(ctx)
		if errors.Is(err, timer.ErrNoActiveSession) {
			a.notice = "Nothing to finish"
		} else if err != nil {
			a.notice = err.Error()
		}
		a.applyEffects(ctx, effects)
	case 'm':
		a.cycleMode()
	case 't':
		a.selectNextTask()
	case 'r':
		a.loadTasks(ctx)
		a.refreshToday(ctx)
		a.notice = "Refreshed"
	}
	return false, nil
}

func (a *timerApp) noteStartError(err error) {
	switch {
	case err == nil:
		a.notice = ""
	case errors.Is(err, timer.ErrNoEligibleTask):
		a.notice = "No open tasks, add one with 'pomotrack tasks add'"
	case errors.Is(err, timer.ErrNoTaskSelected):
		a.notice = "Select a task with [t] first"
	default:
		a.notice = err.Error()
		util.LogWarnf("Start failed: %v", err)
	}
}

func (a *timerApp) cycleMode() {
	var next model.SessionType
	switch a.machine.Mode() {
	case model.SessionWork:
		next = model.SessionShortBreak
	case model.SessionShortBreak:
		next = model.SessionLongBreak
	default:
		next = model.SessionWork
	}
	a.machine.SetMode(next)
}

// selectNextTask cycles the selection through the incomplete tasks
func (a *timerApp) selectNextTask() {
	tasks := a.tasks.Tasks()
	if len(tasks) == 0 {
		a.notice = "No tasks"
		return
	}

	start := 0
	if id, ok := a.tasks.SelectedTaskID(); ok {
		for i, t := range tasks {
			if t.ID == id {
				start = i + 1
				break
			}
		}
	}

	for i := 0; i < len(tasks); i++ {
		candidate := tasks[(start+i)%len(tasks)]
		if candidate.Completed {
			continue
		}
		if err := a.tasks.Select(candidate.ID); err == nil {
			a.notice = "Selected: " + candidate.Text
			return
		}
	}
	a.notice = "No open tasks"
}

func (a *timerApp) applyEffects(ctx context.Context, effects []timer.Effect) {
	for _, e := range effects {
		switch effect := e.(type) {
		case timer.PlayCue:
			if err := a.player.Play(effect.Cue); err != nil {
				util.LogDebugf("Cue playback failed: %v", err)
			}
		case timer.Notify:
			a.notice = effect.Message
			if effect.Level >= timer.NotifyWarn {
				util.LogWarn(effect.Message)
			}
		case timer.RefreshStats:
			a.refreshToday(ctx)
		case timer.ScheduleTransition:
			t := transition{to: effect.To, autoStart: effect.AutoStart}
			a.scheduler.Schedule(effect.After, func() {
				select {
				case a.transitions <- t:
				default:
				}
			})
		}
	}
}

func (a *timerApp) loadUser(ctx context.Context) {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			a.header = "guest (not signed in)"
		} else {
			a.header = "offline"
			util.LogWarnf("Could not fetch user: %v", err)
		}
		return
	}
	a.header = user.Email
}

func (a *timerApp) loadTasks(ctx context.Context) {
	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		util.LogWarnf("Could not fetch tasks: %v", err)
		return
	}
	a.tasks.Replace(tasks)
}

func (a *timerApp) refreshToday(ctx context.Context) {
	payload, err := a.client.Statistics(ctx, "daily")
	if err != nil {
		util.LogDebugf("Daily statistics fetch failed: %v", err)
		return
	}
	a.todayStats = fmt.Sprintf("%d full, %d half, %s",
		payload.FullPomodoros, payload.HalfPomodoros,
		util.FormatMinutes(payload.TotalWorkMinutes))
}

// shutdown finishes any open session before leaving so no session is
// left dangling on the server
func (a *timerApp) shutdown(ctx context.Context) error {
	a.scheduler.Cancel()
	if _, ok := a.machine.ActiveSessionID(); ok {
		if _, err := a.machine.Finish(ctx); err != nil {
			util.LogWarnf("Could not finish session on exit: %v", err)
		}
	}
	fmt.Print(util.ClearScreen + util.MoveCursorHome)
	return nil
}

func (a *timerApp) render() {
	fmt.Print(util.ClearScreen + util.MoveCursorHome)

	fmt.Println(util.FormatHeaderTitle("pomotrack") + "  " + a.header)
	fmt.Println()

	mode := timer.ModeLabel(a.machine.Mode())
	fmt.Printf("  %s  [%s]\n", util.FormatOverviewTitle(mode), a.machine.State())
	fmt.Println()

	total := a.cfg.Durations[a.machine.Mode()]
	percentage := 0.0
	if total > 0 {
		percentage = float64(total-a.machine.Remaining()) / float64(total) * 100
	}
	fmt.Printf("      %s%s%s  %s\n",
		util.ColorBold, util.FormatClock(a.machine.Remaining()), util.ColorReset,
		util.CreateProgressBar(percentage, 40))
	fmt.Println()

	if selected, ok := a.tasks.Selected(); ok {
		fmt.Println("  Task:  " + selected.Text)
	} else {
		fmt.Println("  Task:  none selected")
	}
	if a.todayStats != "" {
		fmt.Println("  Today: " + a.todayStats)
	}
	fmt.Println()

	if a.notice != "" {
		fmt.Println("  " + util.ColorYellow + a.notice + util.ColorReset)
		fmt.Println()
	}

	fmt.Println("  [s]tart [p]ause [f]inish [m]ode [t]ask [r]efresh [q]uit")
}

func parseMode(s string) (model.SessionType, error) {
	switch s {
	case "work":
		return model.SessionWork, nil
	case "short", "shortBreak":
		return model.SessionShortBreak, nil
	case "long", "longBreak":
		return model.SessionLongBreak, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected work, short or long)", s)
	}
}
