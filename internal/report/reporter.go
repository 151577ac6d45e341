// Package report prints conversion results for a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// Reporter prints one line per selector with its classes, followed by the
// declarations no class covers.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. Colors are used when forced or when
// stdout is a terminal.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColors)}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// FORCE_COLOR is set by GitHub Actions and most CI systems
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintFiles prints the results of every file under its path.
func (r *Reporter) PrintFiles(files []cssmodel.FileResult) {
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(r.w, "")
		}
		fmt.Fprintln(r.w, RenderStyle(StyleHeading, f.Path, r.useColors))
		r.PrintResults(f.Results)
	}
}

// PrintResults prints each selector and its classes:
//
//	.foo: p-6 hover:bg-transparent
//	  missing [hover] padding-top: 40px
func (r *Reporter) PrintResults(results []cssmodel.Result) {
	for _, res := range results {
		classes := RenderStyle(StyleClasses, res.Tailwind, r.useColors)
		selector := res.Selector
		if res.Tailwind == "" {
			classes = RenderStyle(StyleMuted, "(no classes)", r.useColors)
			selector = RenderStyle(StyleUncovered, selector, r.useColors)
		}
		fmt.Fprintf(r.w, "%s: %s\n", selector, classes)

		for _, variant := range sortedVariants(res.Missing) {
			for _, d := range res.Missing[variant] {
				fmt.Fprintf(r.w, "  %s %s %s\n",
					RenderStyle(StyleMissing, "missing", r.useColors),
					RenderStyle(StyleMuted, "["+variant+"]", r.useColors),
					d)
			}
		}
	}
}

// sortedVariants lists the variants with missing declarations, the default
// variant first.
func sortedVariants(missing map[string][]cssmodel.Declaration) []string {
	variants := make([]string, 0, len(missing))
	for v, decls := range missing {
		if len(decls) > 0 {
			variants = append(variants, v)
		}
	}
	sort.Slice(variants, func(i, j int) bool {
		if (variants[i] == cssmodel.DefaultVariant) != (variants[j] == cssmodel.DefaultVariant) {
			return variants[i] == cssmodel.DefaultVariant
		}
		return variants[i] < variants[j]
	})
	return variants
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
