package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pomotrack/pomotrack/internal/util"
)

// TableFormatter renders the series as a bordered table with a total row
type TableFormatter struct {
	writer io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

func (f *TableFormatter) Format(report Report) error {
	headers := []string{bucketHeading(report.Period), "Full", "Half", "Minutes"}

	rows := make([][]string, 0, len(report.Series.Labels)+1)
	for i, label := range report.Series.Labels {
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", report.Series.FullCounts[i]),
			fmt.Sprintf("%d", report.Series.HalfCounts[i]),
			fmt.Sprintf("%.1f", report.Series.MinuteTotals[i]),
		})
	}
	rows = append(rows, []string{
		"Total",
		fmt.Sprintf("%d", report.Summary.FullCount),
		fmt.Sprintf("%d", report.Summary.HalfCount),
		fmt.Sprintf("%.1f", report.Summary.TotalMinutes),
	})

	widths := f.columnWidths(headers, rows)

	f.printBorder(widths, "top")
	f.printRow(headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows[:len(rows)-1] {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(rows[len(rows)-1], widths)
	f.printBorder(widths, "bottom")

	if report.Synthetic {
		fmt.Fprintln(f.writer, "(server unreachable, showing sample data)")
	}
	return nil
}

func (f *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 6 {
			widths[i] = 6
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Fprint(f.writer, left)
	for i, width := range widths {
		fmt.Fprint(f.writer, strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.writer, middle)
		}
	}
	fmt.Fprintln(f.writer, right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.writer, "│")
	for i, value := range values {
		if i == 0 {
			fmt.Fprintf(f.writer, " %s │", util.PadRight(value, widths[i]))
		} else {
			pad := widths[i] - util.GetDisplayWidth(value)
			fmt.Fprintf(f.writer, " %s%s │", strings.Repeat(" ", pad), value)
		}
	}
	fmt.Fprintln(f.writer)
}
