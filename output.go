package csstw

import (
	"fmt"
	"io"

	"github.com/yacobolo/csstw/internal/report"
)

// OutputFormat selects how results are written.
type OutputFormat string

const (
	// OutputJSON writes the result list as JSON.
	OutputJSON OutputFormat = "json"
	// OutputText writes one line per selector with its missing declarations.
	OutputText OutputFormat = "text"
	// OutputSummary writes the text output followed by coverage statistics.
	OutputSummary OutputFormat = "summary"
)

// DetermineOutputFormat maps a flag value to an output format. Unknown or
// empty values fall back to JSON.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "text":
		return OutputText
	case "summary":
		return OutputSummary
	default:
		return OutputJSON
	}
}

// WriteOutput writes files in format. forceColors enables colors even when
// stdout is not a terminal.
func WriteOutput(w io.Writer, files []FileResult, format OutputFormat, forceColors bool) error {
	switch format {
	case OutputText:
		report.NewReporter(w, forceColors).PrintFiles(files)

	case OutputSummary:
		reporter := report.NewReporter(w, forceColors)
		reporter.PrintFiles(files)

		stats := report.ComputeStats(files)
		verbose := report.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(stats)
		verbose.PrintCoverage(stats)
		verbose.PrintWarnings(files)

	case OutputJSON:
		if err := WriteJSON(w, files); err != nil {
			return fmt.Errorf("write json: %w", err)
		}

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
