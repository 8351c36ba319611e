package stats

import (
	"math/rand"
	"time"
)

// Fallback builds a synthetic series for the period when the server is
// unreachable, so the stats view still renders something plausible.
// Daily values are fixed; weekly and monthly columns are randomized in
// a small range with minutes derived from the counts.
func Fallback(period Period, now time.Time) Series {
	b := period.bucketer()
	buckets := b.buckets(now)

	series := Series{
		Period:       period,
		Labels:       make([]string, len(buckets)),
		FullCounts:   make([]int, len(buckets)),
		HalfCounts:   make([]int, len(buckets)),
		MinuteTotals: make([]float64, len(buckets)),
	}
	for i, bk := range buckets {
		series.Labels[i] = bk.label
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	for i := range buckets {
		var full, half int
		switch period {
		case PeriodDaily:
			full, half = 5, 3
		case PeriodWeekly:
			full = rng.Intn(3) + 1
			half = rng.Intn(3)
		case PeriodMonthly:
			full = rng.Intn(20) + 5
			half = rng.Intn(10) + 2
		}
		series.FullCounts[i] = full
		series.HalfCounts[i] = half
		series.MinuteTotals[i] = float64(full*25 + half*15)
	}

	return series
}
