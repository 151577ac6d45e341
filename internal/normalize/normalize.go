// Package normalize rewrites declarations into comparable longhand form:
// local variables resolved, shorthands expanded, lengths snapped to the
// design scales and colors in rgba() form.
package normalize

import (
	"strconv"
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/theme"
	"github.com/yacobolo/csstw/internal/values"
)

// Normalizer applies one set of scales. It holds no mutable state.
type Normalizer struct {
	scales *theme.Scales
}

// New returns a normalizer for scales.
func New(scales *theme.Scales) *Normalizer {
	return &Normalizer{scales: scales}
}

// Normalize normalizes every selector of every variant group.
func (n *Normalizer) Normalize(groups *cssmodel.VariantGroups) *cssmodel.VariantMap {
	out := cssmodel.NewOrdered[*cssmodel.ClassMap]()
	for _, key := range groups.Keys() {
		byBase, _ := groups.Get(key)
		classes := cssmodel.NewOrdered[*cssmodel.PropertyMap]()
		for _, base := range byBase.Keys() {
			decls, _ := byBase.Get(base)
			classes.Set(base, n.Declarations(decls))
		}
		out.Set(key, classes)
	}
	return out
}

// Declarations runs the full pipeline over one rule's declarations.
func (n *Normalizer) Declarations(decls []cssmodel.Declaration) *cssmodel.PropertyMap {
	resolved := ResolveLocalVariables(decls)

	expanded := &cssmodel.PropertyMap{}
	for _, d := range resolved {
		for _, l := range Expand(d) {
			expanded.Set(l.Property, l.Value)
		}
	}

	normalized := &cssmodel.PropertyMap{}
	for _, d := range expanded.Declarations() {
		normalized.Set(d.Property, n.Value(d.Property, d.Value))
	}
	return collapseBorderSides(normalized)
}

// Value normalizes a single longhand value.
func (n *Normalizer) Value(property, value string) string {
	if cssmodel.IsCustomProperty(property) {
		return value
	}
	if IsColorProperty(property) {
		if c, ok := values.ParseColor(value); ok {
			return values.FormatRGBA(c)
		}
		return value
	}

	switch cat := Categorize(property); cat {
	case CategoryNone:
		return value
	case CategoryBorderRadius:
		return n.radius(value)
	default:
		return n.round(n.scale(cat), value)
	}
}

func (n *Normalizer) scale(cat ScaleCategory) values.Scale {
	s := n.scales
	switch cat {
	case CategoryFontSize:
		return s.FontSize
	case CategoryLineHeight:
		return s.LineHeight
	case CategoryLetterSpacing:
		return s.LetterSpacing
	case CategoryBorderWidth:
		return s.BorderWidth
	case CategoryWidth:
		return s.Width
	case CategoryHeight:
		return s.Height
	case CategoryMargin:
		return s.Margin
	case CategoryPadding:
		return s.Padding
	case CategoryGap:
		return s.Gap
	default:
		return nil
	}
}

func (n *Normalizer) round(scale values.Scale, value string) string {
	px, ok := values.ParseSize(value, n.scales.Units)
	if !ok {
		return value
	}
	return values.FormatPx(scale.Nearest(px))
}

// radius snaps a border radius, sending anything above the full-round
// threshold, and percentages of 50% or more, to the full-round sentinel.
func (n *Normalizer) radius(value string) string {
	full := values.FormatPx(n.scales.FullRound)

	if pct, ok := strings.CutSuffix(strings.TrimSpace(value), "%"); ok {
		if p, err := strconv.ParseFloat(pct, 64); err == nil && p >= 50 {
			return full
		}
		return value
	}

	px, ok := values.ParseSize(value, n.scales.Units)
	if !ok {
		return value
	}
	if px > theme.FullRoundThreshold {
		return full
	}
	return values.FormatPx(n.scales.BorderRadius.Nearest(px))
}

// ResolveLocalVariables substitutes var(--name) with the value of --name
// declared in the same rule. Each variable is replaced once, in declaration
// order, without recursion or fallbacks.
func ResolveLocalVariables(decls []cssmodel.Declaration) []cssmodel.Declaration {
	var vars []cssmodel.Declaration
	for _, d := range decls {
		if d.IsCustomProperty() {
			vars = append(vars, d)
		}
	}

	out := make([]cssmodel.Declaration, len(decls))
	for i, d := range decls {
		v := d.Value
		for _, cv := range vars {
			v = strings.ReplaceAll(v, "var("+cv.Property+")", cv.Value)
		}
		out[i] = cssmodel.Declaration{Property: d.Property, Value: v}
	}
	return out
}

// collapseBorderSides replaces the four border-*-color and border-*-style
// longhands with border-color and border-style when all four sides are
// present and equal. Asymmetric borders keep their per-side properties.
func collapseBorderSides(m *cssmodel.PropertyMap) *cssmodel.PropertyMap {
	collapsible := map[string][]string{
		"border-color": sideProps("border-%s-color"),
		"border-style": sideProps("border-%s-style"),
	}

	into := make(map[string]string) // side property -> collapsed property
	for collapsed, props := range collapsible {
		first, ok := m.Get(props[0])
		if !ok {
			continue
		}
		uniform := true
		for _, p := range props[1:] {
			if v, ok := m.Get(p); !ok || v != first {
				uniform = false
				break
			}
		}
		if uniform {
			for _, p := range props {
				into[p] = collapsed
			}
		}
	}
	if len(into) == 0 {
		return m
	}

	out := &cssmodel.PropertyMap{}
	for _, d := range m.Declarations() {
		if collapsed, ok := into[d.Property]; ok {
			if !out.Has(collapsed) {
				out.Set(collapsed, d.Value)
			}
			continue
		}
		out.Set(d.Property, d.Value)
	}
	return out
}
