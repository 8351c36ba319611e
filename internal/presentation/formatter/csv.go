package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVFormatter writes the series as CSV rows
type CSVFormatter struct {
	writer io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

func (f *CSVFormatter) Format(report Report) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	headers := []string{bucketHeading(report.Period), "Full", "Half", "Minutes"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for i, label := range report.Series.Labels {
		record := []string{
			label,
			fmt.Sprintf("%d", report.Series.FullCounts[i]),
			fmt.Sprintf("%d", report.Series.HalfCounts[i]),
			fmt.Sprintf("%.1f", report.Series.MinuteTotals[i]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
