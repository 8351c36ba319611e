package stats

import (
	"fmt"
	"time"

	"github.com/pomotrack/pomotrack/internal/util"
)

// Period selects the statistics window. It is a closed set; anything
// else is rejected at parse time.
type Period int

const (
	PeriodDaily Period = iota
	PeriodWeekly
	PeriodMonthly
)

// ParsePeriod maps the wire strings to a Period
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	default:
		return 0, fmt.Errorf("unknown period %q (expected daily, weekly or monthly)", s)
	}
}

func (p Period) String() string {
	switch p {
	case PeriodDaily:
		return "daily"
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// Divisor is the fixed denominator for per-bucket averages: one day,
// seven days, or twelve months regardless of how many buckets hold data
func (p Period) Divisor() int {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 12
	default:
		return 1
	}
}

// bucket is one column of a series
type bucket struct {
	key   string
	label string
}

// bucketer derives the ordered bucket set for a period and assigns
// sessions to buckets by key. One implementation per period.
type bucketer interface {
	buckets(now time.Time) []bucket
	key(t time.Time) string
}

func (p Period) bucketer() bucketer {
	switch p {
	case PeriodWeekly:
		return weeklyBucketer{}
	case PeriodMonthly:
		return monthlyBucketer{}
	default:
		return dailyBucketer{}
	}
}

// dailyBucketer holds a single bucket for today
type dailyBucketer struct{}

func (dailyBucketer) buckets(now time.Time) []bucket {
	day := util.DayStart(now)
	return []bucket{{key: util.DayKey(day), label: day.Format("Monday, Jan 2")}}
}

func (dailyBucketer) key(t time.Time) string {
	return util.DayKey(t)
}

// weeklyBucketer holds the last seven days ending today
type weeklyBucketer struct{}

func (weeklyBucketer) buckets(now time.Time) []bucket {
	today := util.DayStart(now)
	buckets := make([]bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		buckets = append(buckets, bucket{
			key:   util.DayKey(day),
			label: day.Format("Mon 2 Jan"),
		})
	}
	return buckets
}

func (weeklyBucketer) key(t time.Time) string {
	return util.DayKey(t)
}

// monthlyBucketer holds the last twelve months ending this month
type monthlyBucketer struct{}

func (monthlyBucketer) buckets(now time.Time) []bucket {
	thisMonth := util.MonthStart(now)
	buckets := make([]bucket, 0, 12)
	for i := 11; i >= 0; i-- {
		month := thisMonth.AddDate(0, -i, 0)
		buckets = append(buckets, bucket{
			key:   util.MonthKey(month),
			label: month.Format("Jan 2006"),
		})
	}
	return buckets
}

func (monthlyBucketer) key(t time.Time) string {
	return util.MonthKey(t)
}
