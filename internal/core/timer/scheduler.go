package timer

import (
	"sync"
	"time"
)

// Scheduler runs at most one pending delayed transition. Scheduling a
// new one or cancelling discards whatever was pending, so a manual
// operation can always preempt an auto-transition that has not fired.
type Scheduler struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

// NewScheduler creates an idle scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arranges fn to run after d, replacing any pending transition
func (s *Scheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.pending = true
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		if !s.pending {
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
		fn()
	})
}

// Cancel discards the pending transition, if any
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Pending reports whether a transition is waiting to fire
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}
