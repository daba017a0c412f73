package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/cga-events/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time `json:"checked_at"`
	Success     bool      `json:"success"`
	OutputPath  string    `json:"output_path"`
	EventCount  int       `json:"event_count"`
	DaysChecked int       `json:"days_checked"`
	FailedDays  []string  `json:"failed_days,omitempty"`
	Added       int       `json:"added"`
	Removed     int       `json:"removed"`
}

// NewOutputResult summarizes a pipeline report
func NewOutputResult(report *pipeline.Report, outputPath string, checkedAt time.Time) *OutputResult {
	result := &OutputResult{
		CheckedAt:  checkedAt,
		OutputPath: outputPath,
	}
	if report == nil {
		return result
	}

	result.Success = report.Written
	result.EventCount = len(report.Events)
	result.DaysChecked = len(report.Days)
	result.Added = report.Added
	result.Removed = report.Removed
	for _, d := range report.FailedDays() {
		result.FailedDays = append(result.FailedDays, d.Date.Format("2006-01-02"))
	}
	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if !result.Success {
		fmt.Fprintln(w, "\n[FAIL] No events found. Please check if the CGA website is up.")
	} else {
		fmt.Fprintf(w, "\n[SUCCESS] Wrote %d events to %s\n", result.EventCount, result.OutputPath)
	}

	if verbose {
		fmt.Fprintf(w, "  Days checked: %d\n", result.DaysChecked)
		for _, day := range result.FailedDays {
			fmt.Fprintf(w, "  Failed: %s\n", day)
		}
		if result.Success {
			fmt.Fprintf(w, "  New since last run: %d\n", result.Added)
			fmt.Fprintf(w, "  Dropped since last run: %d\n", result.Removed)
		}
	}

	return nil
}
