package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/theme"
	"github.com/yacobolo/csstw/internal/values"
)

func decls(pairs ...string) []cssmodel.Declaration {
	out := make([]cssmodel.Declaration, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, cssmodel.Declaration{Property: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func defaultNormalizer() *Normalizer {
	return New(theme.NewScales(theme.Default(), values.DefaultUnits, 9999))
}

func TestDeclarations(t *testing.T) {
	n := defaultNormalizer()

	tests := []struct {
		name string
		in   []cssmodel.Declaration
		want []cssmodel.Declaration
	}{
		{
			name: "padding rounds to spacing",
			in:   decls("padding", "1.6rem"),
			want: decls("padding-top", "24px", "padding-right", "24px", "padding-bottom", "24px", "padding-left", "24px"),
		},
		{
			name: "padding beyond scale is snapped to nearest",
			in:   decls("padding", "2.6rem"),
			want: decls("padding-top", "40px", "padding-right", "40px", "padding-bottom", "40px", "padding-left", "40px"),
		},
		{
			name: "later longhand overrides in place",
			in:   decls("margin", "1rem auto", "margin-left", "0"),
			want: decls("margin-top", "16px", "margin-right", "auto", "margin-bottom", "16px", "margin-left", "0px"),
		},
		{
			name: "local variable resolution",
			in:   decls("--bg-opacity", "1", "background-color", "#f56565", "background-color", "rgba(245, 101, 101, var(--bg-opacity))"),
			want: decls("--bg-opacity", "1", "background-color", "rgba(245, 101, 101, 1)"),
		},
		{
			name: "border shorthand collapses color and style",
			in:   decls("border", "1px solid #FAD0D0"),
			want: decls(
				"border-top-width", "1px", "border-style", "solid", "border-color", "rgba(250, 208, 208, 1)",
				"border-right-width", "1px", "border-bottom-width", "1px", "border-left-width", "1px",
			),
		},
		{
			name: "asymmetric border colors stay per side",
			in:   decls("border-color", "red blue"),
			want: decls(
				"border-top-color", "rgba(255, 0, 0, 1)", "border-right-color", "rgba(0, 0, 255, 1)",
				"border-bottom-color", "rgba(255, 0, 0, 1)", "border-left-color", "rgba(0, 0, 255, 1)",
			),
		},
		{
			name: "background keeps only given parts",
			in:   decls("background", "transparent"),
			want: decls("background-color", "rgba(0, 0, 0, 0)"),
		},
		{
			name: "typography scales",
			in:   decls("font-size", "15px", "line-height", "1.5", "letter-spacing", "0.03em"),
			want: decls("font-size", "14px", "line-height", "1.5", "letter-spacing", "0.4px"),
		},
		{
			name: "border radius rounds under full threshold",
			in:   decls("border-radius", "5px"),
			want: decls("border-radius", "4px"),
		},
		{
			name: "border radius percentage is full round",
			in:   decls("border-radius", "100%"),
			want: decls("border-radius", "9999px"),
		},
		{
			name: "border radius above threshold is full round",
			in:   decls("border-radius", "200px"),
			want: decls("border-radius", "9999px"),
		},
		{
			name: "unparseable values pass through",
			in:   decls("color", "currentColor", "width", "fit-content", "height", "100%"),
			want: decls("color", "currentColor", "width", "fit-content", "height", "100%"),
		},
		{
			name: "gap expands",
			in:   decls("gap", "1rem 2rem"),
			want: decls("row-gap", "16px", "column-gap", "32px"),
		},
		{
			name: "flex keyword",
			in:   decls("flex", "1"),
			want: decls("flex-grow", "1", "flex-shrink", "1", "flex-basis", "0%"),
		},
		{
			name: "font shorthand",
			in:   decls("font", "italic bold 1rem/1.5 Georgia, serif"),
			want: decls(
				"font-style", "italic", "font-weight", "bold", "font-size", "16px",
				"line-height", "1.5", "font-family", "Georgia, serif",
			),
		},
		{
			name: "wide keyword fills every longhand",
			in:   decls("overflow", "inherit"),
			want: decls("overflow-x", "inherit", "overflow-y", "inherit"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Declarations(tt.in)
			assert.Equal(t, tt.want, got.Declarations())
		})
	}
}

func TestDeclarations_Idempotent(t *testing.T) {
	n := defaultNormalizer()
	inputs := [][]cssmodel.Declaration{
		decls("padding", "1.6rem", "border", "2px dashed hsl(0, 100%, 50%)", "border-radius", "50%"),
		decls("--x", "3px", "margin", "var(--x) 7px", "color", "#abc", "font-size", "17px"),
		decls("border-top", "1px solid red", "border-bottom-color", "blue", "width", "41.6px"),
	}

	for _, in := range inputs {
		once := n.Declarations(in)
		twice := n.Declarations(once.Declarations())
		assert.Equal(t, once.Declarations(), twice.Declarations())
	}
}

func TestNormalize(t *testing.T) {
	groups := cssmodel.NewOrdered[*cssmodel.DeclarationGroups]()
	def := cssmodel.NewOrdered[[]cssmodel.Declaration]()
	def.Set(".foo", decls("padding", "1.6rem"))
	def.Set(".bar", decls("color", "white"))
	groups.Set(cssmodel.DefaultVariant, def)
	hover := cssmodel.NewOrdered[[]cssmodel.Declaration]()
	hover.Set(".foo", decls("background", "transparent"))
	groups.Set("hover", hover)

	out := defaultNormalizer().Normalize(groups)
	assert.Equal(t, []string{"default", "hover"}, out.Keys())

	classes, ok := out.Get(cssmodel.DefaultVariant)
	require.True(t, ok)
	assert.Equal(t, []string{".foo", ".bar"}, classes.Keys())

	bar, _ := classes.Get(".bar")
	v, _ := bar.Get("color")
	assert.Equal(t, "rgba(255, 255, 255, 1)", v)
}

func TestResolveLocalVariables(t *testing.T) {
	got := ResolveLocalVariables(decls(
		"--a", "1px",
		"--b", "var(--a)",
		"width", "var(--b)",
		"height", "var(--missing)",
	))
	// single pass: --b is substituted into width but not re-expanded
	assert.Equal(t, decls("--a", "1px", "--b", "1px", "width", "var(--a)", "height", "var(--missing)"), got)
}

func TestExpand_Unknown(t *testing.T) {
	d := cssmodel.Declaration{Property: "padding", Value: "1px 2px 3px 4px 5px"}
	assert.Equal(t, []cssmodel.Declaration{d}, Expand(d))

	d = cssmodel.Declaration{Property: "display", Value: "flex"}
	assert.Equal(t, []cssmodel.Declaration{d}, Expand(d))
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryPadding, Categorize("padding-left"))
	assert.Equal(t, CategoryBorderRadius, Categorize("border-top-left-radius"))
	assert.Equal(t, CategoryNone, Categorize("display"))
	assert.True(t, IsColorProperty("border-top-color"))
	assert.False(t, IsColorProperty("--color-primary"))
}
