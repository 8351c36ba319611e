package util

import (
	"fmt"
	"time"
)

// FormatClock renders a second count as a zero-padded MM:SS clock string.
// Negative values are clamped to 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatMinutes renders a fractional minute total the way the stats views
// show it, e.g. "92.5 min"
func FormatMinutes(minutes float64) string {
	return fmt.Sprintf("%.1f min", minutes)
}

func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// Pluralize appends "s" for counts other than one
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
