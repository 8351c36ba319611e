package formatter

import (
	"fmt"
	"io"

	"github.com/pomotrack/pomotrack/internal/core/stats"
	"github.com/pomotrack/pomotrack/internal/util"
)

// SummaryFormatter renders the headline numbers and the per-task
// breakdown
type SummaryFormatter struct {
	writer io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{writer: w}
}

func (f *SummaryFormatter) Format(report Report) error {
	w := f.writer

	fmt.Fprintln(w, util.FormatOverviewTitle(fmt.Sprintf("Statistics (%s)", report.Period)))
	if report.Synthetic {
		fmt.Fprintln(w, "(server unreachable, showing sample data)")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Total work time:   %s\n", util.FormatMinutes(report.Summary.TotalMinutes))
	fmt.Fprintf(w, "  Full pomodoros:    %d\n", report.Summary.FullCount)
	fmt.Fprintf(w, "  Half pomodoros:    %d\n", report.Summary.HalfCount)
	fmt.Fprintf(w, "  Average per %s:  %s\n", averageUnit(report.Period), util.FormatMinutes(report.Summary.AverageMinutes))
	fmt.Fprintf(w, "  Best %s:          %s\n", bestUnit(report.Period), report.Summary.BestBucket)

	if len(report.TaskStats) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, util.FormatDataTitle("By task"))
	for _, ts := range report.TaskStats {
		fmt.Fprintf(w, "  %s: %s (%d full, %d half)\n",
			ts.TaskText, util.FormatMinutes(ts.TotalMinutes), ts.FullPomodoros, ts.HalfPomodoros)
	}
	return nil
}

func averageUnit(period stats.Period) string {
	if period == stats.PeriodMonthly {
		return "month"
	}
	return "day"
}

func bestUnit(period stats.Period) string {
	if period == stats.PeriodMonthly {
		return "month"
	}
	return "day"
}
