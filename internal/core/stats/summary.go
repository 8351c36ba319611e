package stats

import "math"

// NoDataLabel is the best-bucket placeholder when nothing was recorded
const NoDataLabel = "-"

// Summary condenses a series into the headline numbers
type Summary struct {
	TotalMinutes   float64
	FullCount      int
	HalfCount      int
	TotalCount     int
	AverageMinutes float64
	BestBucket     string
}

// Summarize computes totals across the series. The average always
// divides by the period's fixed span (1 day, 7 days, 12 months), not by
// how many buckets hold data. The best bucket is the one with the most
// work sessions, full and half alike; ties go to the earliest bucket,
// and an empty series reports NoDataLabel.
func Summarize(series Series) Summary {
	summary := Summary{BestBucket: NoDataLabel}

	for i := range series.Labels {
		summary.TotalMinutes += series.MinuteTotals[i]
		summary.FullCount += series.FullCounts[i]
		summary.HalfCount += series.HalfCounts[i]
	}
	summary.TotalCount = summary.FullCount + summary.HalfCount
	summary.AverageMinutes = math.Round(summary.TotalMinutes / float64(series.Period.Divisor()))

	if series.Empty() {
		return summary
	}

	best := 0
	for i := 1; i < len(series.FullCounts); i++ {
		count := series.FullCounts[i] + series.HalfCounts[i]
		if count > series.FullCounts[best]+series.HalfCounts[best] {
			best = i
		}
	}
	summary.BestBucket = series.Labels[best]
	return summary
}
