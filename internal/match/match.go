package match

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/selector"
)

// VariantMatch is the match of one target selector under one variant.
type VariantMatch struct {
	Selector string
	Variant  string
	Classes  []string // utility class names in reference order
	Missing  []cssmodel.Declaration
}

// Matcher compares target rules against reference classes.
type Matcher struct {
	colorDelta float64
}

// NewMatcher returns a matcher whose color comparisons tolerate distances
// below colorDelta.
func NewMatcher(colorDelta float64) *Matcher {
	return &Matcher{colorDelta: colorDelta}
}

// Match picks the reference classes covering target and lists the target
// properties none of them cover.
//
//  1. keep every class that target fuzzily satisfies
//  2. drop classes whose map equals an earlier kept class
//  3. drop classes strictly contained in another kept class
func (m *Matcher) Match(reference *cssmodel.ClassMap, target *cssmodel.PropertyMap) (classes []string, missing []cssmodel.Declaration) {
	type candidate struct {
		base  string
		props *cssmodel.PropertyMap
	}

	var found []candidate
	for _, base := range reference.Keys() {
		props, _ := reference.Get(base)
		if !IsSubset(target, props, m.colorDelta) {
			continue
		}
		duplicate := false
		for _, c := range found {
			if c.props.Equal(props) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			found = append(found, candidate{base: base, props: props})
		}
	}

	covered := make(map[string]bool)
	for i, c := range found {
		redundant := false
		for j, other := range found {
			if i == j || !IsStrictSubset(other.props, c.props) {
				continue
			}
			// equal once custom properties are ignored: the earlier one stays
			if j < i || !IsStrictSubset(c.props, other.props) {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		classes = append(classes, selector.ClassName(c.base))
		for _, k := range c.props.Keys() {
			covered[k] = true
		}
	}

	for _, d := range target.Declarations() {
		if !covered[d.Property] {
			missing = append(missing, d)
		}
	}
	return classes, missing
}

// MatchVariants matches every target selector against the reference classes
// of its variant. Variants run concurrently; the result keeps variant order,
// then selector order. Every target variant the reference lacks is reported
// in one ErrUnknownVariant error.
func (m *Matcher) MatchVariants(ctx context.Context, reference, target *cssmodel.VariantMap) ([]VariantMatch, error) {
	var errs error
	keys := target.Keys()
	for _, key := range keys {
		if !reference.Has(key) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", cssmodel.ErrUnknownVariant, key))
		}
	}
	if errs != nil {
		return nil, errs
	}

	perVariant := make([][]VariantMatch, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, key := range keys {
		g.Go(func() error {
			refClasses, _ := reference.Get(key)
			targetClasses, _ := target.Get(key)

			out := make([]VariantMatch, 0, targetClasses.Len())
			for _, sel := range targetClasses.Keys() {
				if err := ctx.Err(); err != nil {
					return err
				}
				props, _ := targetClasses.Get(sel)
				classes, missing := m.Match(refClasses, props)
				out = append(out, VariantMatch{Selector: sel, Variant: key, Classes: classes, Missing: missing})
			}
			perVariant[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []VariantMatch
	for _, v := range perVariant {
		all = append(all, v...)
	}
	return all, nil
}
