package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// Stats summarizes how much of the input the reference classes cover.
type Stats struct {
	Files     int
	Selectors int
	Covered   int // selectors with no missing declarations
	Partial   int // selectors with classes and missing declarations
	Uncovered int // selectors without any class
	Missing   int // uncovered declarations across all variants
	Warnings  int
}

// ComputeStats counts coverage over files.
func ComputeStats(files []cssmodel.FileResult) Stats {
	s := Stats{Files: len(files)}
	for _, f := range files {
		s.Warnings += len(f.Warnings)
		for _, r := range f.Results {
			s.Selectors++
			s.Missing += r.MissingCount()
			switch {
			case r.Covered():
				s.Covered++
			case r.Tailwind == "":
				s.Uncovered++
			default:
				s.Partial++
			}
		}
	}
	return s
}

// CoveragePercentage is the share of selectors fully covered.
func (s Stats) CoveragePercentage() float64 {
	if s.Selectors == 0 {
		return 0
	}
	return float64(s.Covered) / float64(s.Selectors) * 100
}

// VerboseReporter prints coverage statistics and warnings.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs coverage counts
func (r *VerboseReporter) PrintStatistics(s Stats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleHeading, "Conversion Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Converted:      %d\n", s.Files)
	fmt.Fprintf(r.w, "Selectors:            %d\n", s.Selectors)
	fmt.Fprintf(r.w, "Fully Covered:        %d (%.1f%%)\n", s.Covered, s.CoveragePercentage())
	fmt.Fprintf(r.w, "Partially Covered:    %d\n", s.Partial)
	fmt.Fprintf(r.w, "Uncovered:            %d\n", s.Uncovered)
	fmt.Fprintf(r.w, "Missing Declarations: %s\n", pluralizeCount(s.Missing, "declaration", "declarations"))
}

// PrintCoverage shows visual progress bar
func (r *VerboseReporter) PrintCoverage(s Stats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleHeading, "Coverage", r.useColors))
	fmt.Fprintln(r.w, "--------")
	printProgressBar(r.w, s.CoveragePercentage())
}

// PrintWarnings shows extraction warnings per file
func (r *VerboseReporter) PrintWarnings(files []cssmodel.FileResult) {
	var n int
	for _, f := range files {
		n += len(f.Warnings)
	}
	if n == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleMissing, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, f := range files {
		for _, warning := range f.Warnings {
			fmt.Fprintf(r.w, "• %s: %s\n", f.Path, warning)
		}
	}
}

func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
