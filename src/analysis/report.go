package analysis

import (
	"encoding/json"
	"fmt"
	"io"

	"nagios-autothreshold/src/analysis/core"
	"nagios-autothreshold/src/models"
)

// WriteText prints a report in the tool's plain console format.
func WriteText(w io.Writer, r *models.MThresholdReport) error {
	s := r.Stats
	lines := []string{
		fmt.Sprintf("Based on %d data points:", s.Samples),
		"Means are:",
		fmt.Sprint(s.Means),
		"Standard deviations are:",
		fmt.Sprint(s.StdDevs),
		"Converted means are:",
		fmt.Sprint(r.FormattedMeans),
		"Converted standard deviations are:",
		fmt.Sprint(r.FormattedStdDevs),
		fmt.Sprintf("Suggested inbound thresholds: warning=%s critical=%s",
			core.FormatBits(r.Inbound.Warning), core.FormatBits(r.Inbound.Critical)),
		fmt.Sprintf("Suggested outbound thresholds: warning=%s critical=%s",
			core.FormatBits(r.Outbound.Warning), core.FormatBits(r.Outbound.Critical)),
	}
	for col, n := range s.Counts {
		if n == 0 {
			lines = append(lines, fmt.Sprintf("Note: %s was unset in every sample", models.ColumnNames[col]))
		}
	}
	if r.SkippedMalformed > 0 || r.SkippedHolidays > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d malformed and %d holiday samples", r.SkippedMalformed, r.SkippedHolidays))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints a report as indented JSON.
func WriteJSON(w io.Writer, r *models.MThresholdReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
