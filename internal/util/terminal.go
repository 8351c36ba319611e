package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"

	ClearScreen    = "\033[2J" // Clear entire screen
	ClearLine      = "\033[2K" // Clear entire line
	MoveCursorHome = "\033[H"  // Move cursor to home position
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// FormatHeaderTitle formats a top-level heading
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatOverviewTitle formats an overview section heading
func FormatOverviewTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}

// FormatDataTitle formats a data section heading
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, title, ColorReset)
}

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// CreateBar renders a fixed-width bar with filled cells proportional to
// value/max. A zero max yields an empty bar.
func CreateBar(value, max float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if max > 0 {
		filled = int((value / max) * float64(width))
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// CreateProgressBar creates a progress bar with the given percentage and width
func CreateProgressBar(percentage float64, width int) string {
	if width < 10 {
		width = 12
	}
	barWidth := width - 12
	if barWidth < 0 {
		barWidth = 0
	}
	filled := int((percentage / 100) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// PadRight pads text with spaces up to the given display width
func PadRight(text string, width int) string {
	gap := width - GetDisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return fmt.Sprintf("%s%s%s", strings.Repeat(" ", padding), text, strings.Repeat(" ", width-padding-w))
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}
