package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/selector"
)

// DefaultDenylist holds selector substrings of reference utilities that the
// matcher cannot use.
var DefaultDenylist = []string{
	"container",
	`w-2\/`, `w-3\/`, `w-4\/`, `w-5\/`, `w-6\/`,
	`w-7\/`, `w-8\/`, `w-9\/`, `w-10\/`, `w-11\/`,
}

// SupportedRule reports whether a reference stylesheet selector can be used as
// a utility class: a single class selector, optionally followed by pseudos,
// that contains none of the denylisted substrings.
func SupportedRule(sel string, denylist []string) bool {
	if !strings.HasPrefix(sel, ".") {
		return false
	}
	for _, deny := range denylist {
		if deny != "" && strings.Contains(sel, deny) {
			return false
		}
	}

	structural := 0
	for _, tok := range selector.Tokenize(sel) {
		switch {
		case tok.Kind == selector.Comma || tok.Kind == selector.Combinator:
			return false
		case tok.IsStructural():
			structural++
		}
	}
	return structural == 1
}

// FilterSupported keeps the rules accepted by SupportedRule.
func FilterSupported(rules []cssmodel.RuleRecord, denylist []string) []cssmodel.RuleRecord {
	out := make([]cssmodel.RuleRecord, 0, len(rules))
	for _, r := range rules {
		if SupportedRule(r.Selector, denylist) {
			out = append(out, r)
		}
	}
	return out
}

// Group partitions rules by variant key, then by base selector. Declarations
// of rules that share a base selector and variant are concatenated in rule
// order. Rules inside media queries without a min-width feature are skipped
// and reported as warnings. A min-width that does not resolve to a
// breakpoint is an error.
func Group(rules []cssmodel.RuleRecord, bps *selector.Breakpoints) (*cssmodel.VariantGroups, []string, error) {
	return group(rules, bps, false)
}

// GroupReference is Group for a reference stylesheet. Rules under a
// min-width that resolves to no breakpoint are skipped with a warning
// instead of failing, and rules whose base selector still ends in a pseudo
// (":active", ":focus-within") are dropped because no variant of the key
// can express them.
func GroupReference(rules []cssmodel.RuleRecord, bps *selector.Breakpoints) (*cssmodel.VariantGroups, []string) {
	groups, warnings, _ := group(rules, bps, true)
	return groups, warnings
}

func group(rules []cssmodel.RuleRecord, bps *selector.Breakpoints, reference bool) (*cssmodel.VariantGroups, []string, error) {
	groups := cssmodel.NewOrdered[*cssmodel.DeclarationGroups]()
	var warnings []string
	skippedMedia := make(map[string]bool)

	for _, r := range rules {
		if r.AtRuleName == "media" && !selector.HasMinWidth(r.AtRuleParams) {
			warnings = append(warnings, fmt.Sprintf("skipped %s inside @media %s", r.Selector, r.AtRuleParams))
			continue
		}

		d, err := selector.Decompose(r.Selector, r.AtRuleParams, bps)
		if err != nil {
			if !reference || !errors.Is(err, cssmodel.ErrUnsupportedMedia) {
				return nil, warnings, fmt.Errorf("selector %s: %w", r.Selector, err)
			}
			// one warning per media block
			if !skippedMedia[r.AtRuleParams] {
				skippedMedia[r.AtRuleParams] = true
				warnings = append(warnings, fmt.Sprintf("skipped rules inside @media %s: no matching screen", r.AtRuleParams))
			}
			continue
		}
		if d.Base == "" {
			continue
		}
		if reference && selector.EndsInPseudo(d.Base) {
			continue
		}

		key := d.Key()
		byBase, ok := groups.Get(key)
		if !ok {
			byBase = cssmodel.NewOrdered[[]cssmodel.Declaration]()
			groups.Set(key, byBase)
		}
		existing, _ := byBase.Get(d.Base)
		byBase.Set(d.Base, append(existing, r.Declarations...))
	}

	return groups, warnings, nil
}
