package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/pomotrack/pomotrack/internal/core/stats"
	"github.com/pomotrack/pomotrack/internal/util"
)

const barWidth = 24

// Render writes the two terminal charts for a series: work minutes per
// bucket, then stacked full/half pomodoro counts.
func Render(w io.Writer, series stats.Series) error {
	labelWidth := 0
	for _, label := range series.Labels {
		if width := util.GetDisplayWidth(label); width > labelWidth {
			labelWidth = width
		}
	}

	if err := renderMinutes(w, series, labelWidth); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return renderPomodoros(w, series, labelWidth)
}

func renderMinutes(w io.Writer, series stats.Series, labelWidth int) error {
	if _, err := fmt.Fprintln(w, util.ColorBold+"Work time"+util.ColorReset); err != nil {
		return err
	}

	maxMinutes := 0.0
	for _, m := range series.MinuteTotals {
		if m > maxMinutes {
			maxMinutes = m
		}
	}

	for i, label := range series.Labels {
		bar := util.CreateBar(series.MinuteTotals[i], maxMinutes, barWidth)
		_, err := fmt.Fprintf(w, "  %s  %s%s%s  %s\n",
			util.PadRight(label, labelWidth),
			util.ColorYellow, bar, util.ColorReset,
			util.FormatMinutes(series.MinuteTotals[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func renderPomodoros(w io.Writer, series stats.Series, labelWidth int) error {
	if _, err := fmt.Fprintln(w, util.ColorBold+"Pomodoros"+util.ColorReset); err != nil {
		return err
	}

	maxCount := 0
	for i := range series.Labels {
		if total := series.FullCounts[i] + series.HalfCounts[i]; total > maxCount {
			maxCount = total
		}
	}

	for i, label := range series.Labels {
		full := series.FullCounts[i]
		half := series.HalfCounts[i]

		scaledFull, scaledHalf := scaleStacked(full, half, maxCount)
		bar := util.ColorGreen + strings.Repeat("█", scaledFull) + util.ColorReset +
			util.ColorYellow + strings.Repeat("▒", scaledHalf) + util.ColorReset

		_, err := fmt.Fprintf(w, "  %s  %s  %d full, %d half\n",
			util.PadRight(label, labelWidth), bar, full, half)
		if err != nil {
			return err
		}
	}
	return nil
}

// scaleStacked maps the stacked counts onto the bar width, keeping the
// full/half proportion
func scaleStacked(full, half, maxCount int) (int, int) {
	if maxCount == 0 {
		return 0, 0
	}
	total := full + half
	if total == 0 {
		return 0, 0
	}

	scaledTotal := total * barWidth / maxCount
	if scaledTotal == 0 && total > 0 {
		scaledTotal = 1
	}
	scaledFull := scaledTotal * full / total
	if scaledFull == 0 && full > 0 {
		scaledFull = 1
	}
	return scaledFull, scaledTotal - scaledFull
}
