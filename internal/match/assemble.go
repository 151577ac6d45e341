package match

import (
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// Assemble merges variant matches by selector. Results appear in the order
// selectors are first met; class lists are joined variant by variant and each
// variant with uncovered properties gets its own missing entry.
func Assemble(matches []VariantMatch) []cssmodel.Result {
	var results []cssmodel.Result
	index := make(map[string]int)
	classes := make(map[string][]string)

	for _, m := range matches {
		i, ok := index[m.Selector]
		if !ok {
			i = len(results)
			index[m.Selector] = i
			results = append(results, cssmodel.Result{Selector: m.Selector, Missing: make(map[string][]cssmodel.Declaration)})
		}
		classes[m.Selector] = append(classes[m.Selector], m.Classes...)
		if len(m.Missing) > 0 {
			results[i].Missing[m.Variant] = append(results[i].Missing[m.Variant], m.Missing...)
		}
	}

	for i := range results {
		results[i].Tailwind = strings.Join(classes[results[i].Selector], " ")
	}
	return results
}
