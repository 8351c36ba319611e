package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

type jsonReport struct {
	Period         string                 `json:"period"`
	Labels         []string               `json:"labels"`
	FullCounts     []int                  `json:"full_counts"`
	HalfCounts     []int                  `json:"half_counts"`
	MinuteTotals   []float64              `json:"minute_totals"`
	Summary        jsonSummary            `json:"summary"`
	TaskStatistics []model.TaskStatistics `json:"task_statistics,omitempty"`
	Synthetic      bool                   `json:"synthetic,omitempty"`
}

type jsonSummary struct {
	TotalMinutes   float64 `json:"total_minutes"`
	FullPomodoros  int     `json:"full_pomodoros"`
	HalfPomodoros  int     `json:"half_pomodoros"`
	TotalPomodoros int     `json:"total_pomodoros"`
	AverageMinutes float64 `json:"average_minutes"`
	BestBucket     string  `json:"best_bucket"`
}

func (f *JSONFormatter) Format(report Report) error {
	out := jsonReport{
		Period:       report.Period.String(),
		Labels:       report.Series.Labels,
		FullCounts:   report.Series.FullCounts,
		HalfCounts:   report.Series.HalfCounts,
		MinuteTotals: report.Series.MinuteTotals,
		Summary: jsonSummary{
			TotalMinutes:   report.Summary.TotalMinutes,
			FullPomodoros:  report.Summary.FullCount,
			HalfPomodoros:  report.Summary.HalfCount,
			TotalPomodoros: report.Summary.TotalCount,
			AverageMinutes: report.Summary.AverageMinutes,
			BestBucket:     report.Summary.BestBucket,
		},
		TaskStatistics: report.TaskStats,
		Synthetic:      report.Synthetic,
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(f.writer, string(data))
	return err
}
