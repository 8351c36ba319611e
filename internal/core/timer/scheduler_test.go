package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFires(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule(10*time.Millisecond, func() { fired.Add(1) })
	assert.True(t, s.Pending())

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, s.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule(20*time.Millisecond, func() { fired.Add(1) })
	s.Cancel()
	assert.False(t, s.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestSchedulerReplacesPending(t *testing.T) {
	s := NewScheduler()
	var first, second atomic.Int32

	s.Schedule(30*time.Millisecond, func() { first.Add(1) })
	s.Schedule(10*time.Millisecond, func() { second.Add(1) })

	assert.Eventually(t, func() bool {
		return second.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced transition must not fire")
}

func TestSchedulerCancelWhenIdle(t *testing.T) {
	s := NewScheduler()
	s.Cancel()
	assert.False(t, s.Pending())
}
