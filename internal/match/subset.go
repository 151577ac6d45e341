// Package match selects the reference classes that reproduce a target
// rule and merges the per-variant matches into one result per selector.
package match

import (
	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/normalize"
	"github.com/yacobolo/csstw/internal/values"
)

// IsSubset reports whether parent satisfies every property of child.
// Custom properties are ignored on both sides, and the check fails when
// either side has nothing left to compare. Colors match when their RGBA
// distance is below colorDelta; a color that does not parse falls back to
// string equality.
func IsSubset(parent, child *cssmodel.PropertyMap, colorDelta float64) bool {
	return subset(parent, child, func(prop, p, c string) bool {
		if p == c {
			return true
		}
		if !normalize.IsColorProperty(prop) {
			return false
		}
		pc, ok := values.ParseColor(p)
		if !ok {
			return false
		}
		cc, ok := values.ParseColor(c)
		if !ok {
			return false
		}
		return values.ColorDistance(pc, cc) < colorDelta
	})
}

// IsStrictSubset is IsSubset with exact value equality for every property.
func IsStrictSubset(parent, child *cssmodel.PropertyMap) bool {
	return subset(parent, child, func(_, p, c string) bool { return p == c })
}

func subset(parent, child *cssmodel.PropertyMap, equal func(prop, p, c string) bool) bool {
	if comparableCount(parent) == 0 || comparableCount(child) == 0 {
		return false
	}
	for _, d := range child.Declarations() {
		if d.IsCustomProperty() {
			continue
		}
		pv, ok := parent.Get(d.Property)
		if !ok || !equal(d.Property, pv, d.Value) {
			return false
		}
	}
	return true
}

func comparableCount(m *cssmodel.PropertyMap) int {
	n := 0
	for _, k := range m.Keys() {
		if !cssmodel.IsCustomProperty(k) {
			n++
		}
	}
	return n
}
