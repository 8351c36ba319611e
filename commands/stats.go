package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pomotrack/pomotrack/internal/core/model"
	"github.com/pomotrack/pomotrack/internal/core/stats"
	"github.com/pomotrack/pomotrack/internal/presentation/chart"
	"github.com/pomotrack/pomotrack/internal/presentation/formatter"
	"github.com/pomotrack/pomotrack/internal/util"
)

var (
	statsPeriod string
	statsOutput string
	statsNoBars bool

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show pomodoro statistics",
		Long: `Show bucketed work statistics for a period: today as a single
bucket, the last seven days, or the last twelve months. When the server
is unreachable a synthetic sample series is rendered instead.`,
		RunE: runStats,
	}
)

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "daily",
		"Statistics period (daily, weekly, monthly)")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	statsCmd.Flags().BoolVar(&statsNoBars, "no-chart", false,
		"Skip the bar charts")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	period, err := stats.ParsePeriod(statsPeriod)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	now := util.GetTimeProvider().Now()

	var (
		series    stats.Series
		taskStats []model.TaskStatistics
		synthetic bool
	)
	payload, err := client.Statistics(context.Background(), period.String())
	if err != nil {
		util.LogWarnf("Statistics fetch failed, using sample data: %v", err)
		series = stats.Fallback(period, now)
		synthetic = true
	} else {
		series = stats.Aggregate(payload.Sessions, period, now)
		taskStats = payload.TaskStatistics
	}

	report := formatter.Report{
		Period:    period,
		Series:    series,
		Summary:   stats.Summarize(series),
		TaskStats: taskStats,
		Synthetic: synthetic,
	}

	if statsOutput == "table" && !statsNoBars {
		if err := chart.Render(os.Stdout, series); err != nil {
			return err
		}
		fmt.Println()
	}

	f, err := formatter.New(statsOutput, os.Stdout)
	if err != nil {
		return err
	}
	return f.Format(report)
}
