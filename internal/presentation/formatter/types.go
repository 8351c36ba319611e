package formatter

import (
	"fmt"
	"io"

	"github.com/pomotrack/pomotrack/internal/core/model"
	"github.com/pomotrack/pomotrack/internal/core/stats"
)

// Report bundles everything a statistics view renders
type Report struct {
	Period    stats.Period
	Series    stats.Series
	Summary   stats.Summary
	TaskStats []model.TaskStatistics
	Synthetic bool
}

// Formatter renders a report to its writer
type Formatter interface {
	Format(report Report) error
}

// New returns the formatter for an output name
func New(output string, w io.Writer) (Formatter, error) {
	switch output {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table, json, csv or summary)", output)
	}
}

// bucketHeading names the series column for a period
func bucketHeading(period stats.Period) string {
	if period == stats.PeriodMonthly {
		return "Month"
	}
	return "Day"
}
