package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

func props(pairs ...string) *cssmodel.PropertyMap {
	m := cssmodel.NewPropertyMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func classMap(entries ...any) *cssmodel.ClassMap {
	m := cssmodel.NewOrdered[*cssmodel.PropertyMap]()
	for i := 0; i+1 < len(entries); i += 2 {
		m.Set(entries[i].(string), entries[i+1].(*cssmodel.PropertyMap))
	}
	return m
}

func TestIsSubset(t *testing.T) {
	tests := []struct {
		name   string
		parent *cssmodel.PropertyMap
		child  *cssmodel.PropertyMap
		delta  float64
		want   bool
	}{
		{
			name:   "reflexive",
			parent: props("margin-top", "16px", "color", "rgba(0, 0, 0, 1)"),
			child:  props("margin-top", "16px", "color", "rgba(0, 0, 0, 1)"),
			want:   true,
		},
		{
			name:   "proper subset",
			parent: props("margin-top", "16px", "margin-left", "16px"),
			child:  props("margin-top", "16px"),
			want:   true,
		},
		{
			name:   "value differs",
			parent: props("margin-top", "16px"),
			child:  props("margin-top", "8px"),
		},
		{
			name:   "property absent",
			parent: props("margin-top", "16px"),
			child:  props("margin-left", "16px"),
		},
		{
			name:   "empty child",
			parent: props("margin-top", "16px"),
			child:  props(),
		},
		{
			name:   "empty parent",
			parent: props(),
			child:  props("margin-top", "16px"),
		},
		{
			name:   "custom properties ignored",
			parent: props("color", "rgba(0, 0, 0, 1)"),
			child:  props("--text-opacity", "1", "color", "rgba(0, 0, 0, 1)"),
			want:   true,
		},
		{
			name:   "only custom properties",
			parent: props("--a", "1", "color", "red"),
			child:  props("--a", "1"),
		},
		{
			name:   "color within delta",
			parent: props("color", "rgba(0, 0, 0, 1)"),
			child:  props("color", "rgba(3, 4, 0, 1)"),
			delta:  5.01,
			want:   true,
		},
		{
			name:   "color at delta fails",
			parent: props("color", "rgba(0, 0, 0, 1)"),
			child:  props("color", "rgba(3, 4, 0, 1)"),
			delta:  5,
		},
		{
			name:   "non-color property is exact",
			parent: props("width", "rgba(0, 0, 0, 1)"),
			child:  props("width", "rgba(0, 0, 1, 1)"),
			delta:  100,
		},
		{
			name:   "unparseable colors compare as strings",
			parent: props("color", "currentColor"),
			child:  props("color", "currentColor"),
			delta:  1,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubset(tt.parent, tt.child, tt.delta))
		})
	}
}

func TestIsStrictSubset(t *testing.T) {
	parent := props("color", "rgba(0, 0, 0, 1)", "margin-top", "16px")
	assert.True(t, IsStrictSubset(parent, props("margin-top", "16px")))
	assert.False(t, IsStrictSubset(parent, props("color", "rgba(1, 0, 0, 1)")))
}

func TestMatch(t *testing.T) {
	m := NewMatcher(10)

	tests := []struct {
		name        string
		reference   *cssmodel.ClassMap
		target      *cssmodel.PropertyMap
		wantClasses []string
		wantMissing []cssmodel.Declaration
	}{
		{
			name: "exact class",
			reference: classMap(
				".p-5", props("padding-top", "20px", "padding-right", "20px", "padding-bottom", "20px", "padding-left", "20px"),
				".p-6", props("padding-top", "24px", "padding-right", "24px", "padding-bottom", "24px", "padding-left", "24px"),
			),
			target:      props("padding-top", "24px", "padding-right", "24px", "padding-bottom", "24px", "padding-left", "24px"),
			wantClasses: []string{"p-6"},
		},
		{
			name: "side classes are redundant next to the shorthand class",
			reference: classMap(
				".m-4", props("margin-top", "16px", "margin-right", "16px", "margin-bottom", "16px", "margin-left", "16px"),
				".mx-4", props("margin-left", "16px", "margin-right", "16px"),
				".my-4", props("margin-top", "16px", "margin-bottom", "16px"),
				".mt-4", props("margin-top", "16px"),
			),
			target:      props("margin-top", "16px", "margin-right", "16px", "margin-bottom", "16px", "margin-left", "16px"),
			wantClasses: []string{"m-4"},
		},
		{
			name: "duplicates keep the first",
			reference: classMap(
				".a", props("display", "block"),
				".b", props("display", "block"),
			),
			target:      props("display", "block"),
			wantClasses: []string{"a"},
		},
		{
			name: "equal apart from custom properties keeps the first",
			reference: classMap(
				".text-black", props("--text-opacity", "1", "color", "rgba(0, 0, 0, 1)"),
				".text-ink", props("color", "rgba(0, 0, 0, 1)"),
			),
			target:      props("color", "rgba(0, 0, 0, 1)"),
			wantClasses: []string{"text-black"},
		},
		{
			name: "reference order and missing properties",
			reference: classMap(
				".block", props("display", "block"),
				".mt-4", props("margin-top", "16px"),
			),
			target:      props("margin-top", "16px", "cursor", "pointer", "display", "block"),
			wantClasses: []string{"block", "mt-4"},
			wantMissing: []cssmodel.Declaration{{Property: "cursor", Value: "pointer"}},
		},
		{
			name: "escaped class names are unescaped",
			reference: classMap(
				`.w-1\/2`, props("width", "50%"),
			),
			target:      props("width", "50%"),
			wantClasses: []string{"w-1/2"},
		},
		{
			name:        "nothing matches",
			reference:   classMap(".block", props("display", "block")),
			target:      props("padding-top", "40px"),
			wantMissing: []cssmodel.Declaration{{Property: "padding-top", Value: "40px"}},
		},
		{
			name:        "custom target properties are reported",
			reference:   classMap(".block", props("display", "block")),
			target:      props("--gap", "4px", "display", "block"),
			wantClasses: []string{"block"},
			wantMissing: []cssmodel.Declaration{{Property: "--gap", Value: "4px"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, missing := m.Match(tt.reference, tt.target)
			assert.Equal(t, tt.wantClasses, classes)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func variantMap(entries ...any) *cssmodel.VariantMap {
	m := cssmodel.NewOrdered[*cssmodel.ClassMap]()
	for i := 0; i+1 < len(entries); i += 2 {
		m.Set(entries[i].(string), entries[i+1].(*cssmodel.ClassMap))
	}
	return m
}

func TestMatchVariants(t *testing.T) {
	reference := variantMap(
		cssmodel.DefaultVariant, classMap(".block", props("display", "block")),
		"hover", classMap(`.hover\:block`, props("display", "block")),
	)
	target := variantMap(
		cssmodel.DefaultVariant, classMap(".foo", props("display", "block"), ".bar", props("cursor", "pointer")),
		"hover", classMap(".foo", props("display", "block")),
	)

	got, err := NewMatcher(0).MatchVariants(context.Background(), reference, target)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, VariantMatch{Selector: ".foo", Variant: cssmodel.DefaultVariant, Classes: []string{"block"}}, got[0])
	assert.Equal(t, ".bar", got[1].Selector)
	assert.Empty(t, got[1].Classes)
	assert.Equal(t, VariantMatch{Selector: ".foo", Variant: "hover", Classes: []string{"hover:block"}}, got[2])
}

func TestMatchVariants_UnknownVariant(t *testing.T) {
	reference := variantMap(cssmodel.DefaultVariant, classMap(".block", props("display", "block")))
	target := variantMap(
		"hover", classMap(".foo", props("display", "block")),
		"focus", classMap(".foo", props("display", "block")),
	)

	_, err := NewMatcher(0).MatchVariants(context.Background(), reference, target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cssmodel.ErrUnknownVariant))
	assert.Contains(t, err.Error(), `"hover"`)
	assert.Contains(t, err.Error(), `"focus"`)
}

func TestMatchVariants_Canceled(t *testing.T) {
	reference := variantMap(cssmodel.DefaultVariant, classMap(".block", props("display", "block")))
	target := variantMap(cssmodel.DefaultVariant, classMap(".foo", props("display", "block")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMatcher(0).MatchVariants(ctx, reference, target)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssemble(t *testing.T) {
	got := Assemble([]VariantMatch{
		{Selector: ".foo", Variant: cssmodel.DefaultVariant, Classes: []string{"p-6"}},
		{Selector: ".bar", Variant: cssmodel.DefaultVariant, Missing: []cssmodel.Declaration{{Property: "cursor", Value: "pointer"}}},
		{Selector: ".foo", Variant: "hover", Classes: []string{"hover:bg-transparent"}},
		{Selector: ".foo", Variant: "sm", Missing: []cssmodel.Declaration{{Property: "padding-top", Value: "40px"}}},
	})

	require.Len(t, got, 2)
	assert.Equal(t, ".foo", got[0].Selector)
	assert.Equal(t, "p-6 hover:bg-transparent", got[0].Tailwind)
	assert.Equal(t, map[string][]cssmodel.Declaration{
		"sm": {{Property: "padding-top", Value: "40px"}},
	}, got[0].Missing)

	assert.Equal(t, ".bar", got[1].Selector)
	assert.Equal(t, "", got[1].Tailwind)
	assert.Len(t, got[1].Missing[cssmodel.DefaultVariant], 1)
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, Assemble(nil))
}
