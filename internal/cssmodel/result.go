package cssmodel

// Result is the conversion of one input selector.
type Result struct {
	Selector string `json:"selector"`
	// Tailwind holds the space separated utility classes, variant-prefixed
	// where the match came from a variant block.
	Tailwind string `json:"tailwind"`
	// Missing lists the properties no class covers, keyed by variant.
	Missing map[string][]Declaration `json:"missing"`
}

// Covered reports whether every property of the selector is covered.
func (r Result) Covered() bool {
	for _, decls := range r.Missing {
		if len(decls) > 0 {
			return false
		}
	}
	return true
}

// MissingCount returns the number of uncovered declarations.
func (r Result) MissingCount() int {
	n := 0
	for _, decls := range r.Missing {
		n += len(decls)
	}
	return n
}

// FileResult holds the results of one converted input file.
type FileResult struct {
	Path     string   `json:"path"`
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}
