package stats

import (
	"time"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

// fullThresholdMinutes separates full pomodoros from half ones
const fullThresholdMinutes = 25.0

// Series is the bucketed aggregation of work sessions for one period.
// All four slices always have the same length, one entry per bucket.
type Series struct {
	Period       Period
	Labels       []string
	FullCounts   []int
	HalfCounts   []int
	MinuteTotals []float64
}

// Buckets returns the number of columns in the series
func (s Series) Buckets() int {
	return len(s.Labels)
}

// Empty reports whether no session contributed to any bucket
func (s Series) Empty() bool {
	for i := range s.Labels {
		if s.FullCounts[i] != 0 || s.HalfCounts[i] != 0 || s.MinuteTotals[i] != 0 {
			return false
		}
	}
	return true
}

// Aggregate distributes sessions into the period's buckets relative to
// now. Only closed work sessions count; a session lands in the bucket
// its end time falls into, and sessions outside the window are dropped.
// Zero-duration sessions contribute to neither count but would not move
// the minute totals either.
func Aggregate(sessions []model.Session, period Period, now time.Time) Series {
	b := period.bucketer()
	buckets := b.buckets(now)

	series := Series{
		Period:       period,
		Labels:       make([]string, len(buckets)),
		FullCounts:   make([]int, len(buckets)),
		HalfCounts:   make([]int, len(buckets)),
		MinuteTotals: make([]float64, len(buckets)),
	}

	index := make(map[string]int, len(buckets))
	for i, bk := range buckets {
		series.Labels[i] = bk.label
		index[bk.key] = i
	}

	for _, s := range sessions {
		if s.SessionType != model.SessionWork || !s.Closed() {
			continue
		}
		// Bucket keys derive from now's zone; end times arrive in UTC
		// and must be read on the same local calendar
		i, ok := index[b.key(s.EndedAt.Time.In(now.Location()))]
		if !ok {
			continue
		}

		duration := s.DurationMinutes
		series.MinuteTotals[i] += duration
		if duration >= fullThresholdMinutes {
			series.FullCounts[i]++
		} else if duration > 0 {
			series.HalfCounts[i]++
		}
	}

	return series
}
