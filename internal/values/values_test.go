package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantPx float64
		wantOK bool
	}{
		{name: "zero literal", value: "0", wantPx: 0, wantOK: true},
		{name: "pixels", value: "12px", wantPx: 12, wantOK: true},
		{name: "rem", value: "1.6rem", wantPx: 25.6, wantOK: true},
		{name: "em", value: "0.5em", wantPx: 8, wantOK: true},
		{name: "leading dot", value: ".25rem", wantPx: 4, wantOK: true},
		{name: "negative", value: "-0.05em", wantPx: -0.8, wantOK: true},
		{name: "surrounding space", value: "  4px ", wantPx: 4, wantOK: true},
		{name: "upper case unit", value: "2PX", wantPx: 2, wantOK: true},
		{name: "percentage", value: "50%", wantOK: false},
		{name: "keyword", value: "auto", wantOK: false},
		{name: "fit-content", value: "fit-content", wantOK: false},
		{name: "unitless", value: "1.5", wantOK: false},
		{name: "multiple values", value: "1px solid", wantOK: false},
		{name: "viewport unit", value: "100vh", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, ok := ParseSize(tt.value, DefaultUnits)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantPx, px, 1e-9)
			}
		})
	}
}

func TestParseSize_CustomUnits(t *testing.T) {
	px, ok := ParseSize("2rem", Units{Rem: 10, Em: 20})
	require.True(t, ok)
	assert.InDelta(t, 20.0, px, 1e-9)

	px, ok = ParseSize("2em", Units{Rem: 10, Em: 20})
	require.True(t, ok)
	assert.InDelta(t, 40.0, px, 1e-9)
}

func TestFormatPx(t *testing.T) {
	assert.Equal(t, "25.6px", FormatPx(1.6*16))
	assert.Equal(t, "24px", FormatPx(24))
	assert.Equal(t, "0px", FormatPx(-0.0))
	assert.Equal(t, "-0.8px", FormatPx(-0.05*16))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   RGBA
		wantOK bool
	}{
		{name: "hex6", value: "#FAD0D0", want: RGBA{R: 250, G: 208, B: 208, A: 1}, wantOK: true},
		{name: "hex3", value: "#fff", want: RGBA{R: 255, G: 255, B: 255, A: 1}, wantOK: true},
		{name: "hex8", value: "#00000000", want: RGBA{A: 0}, wantOK: true},
		{name: "hex4", value: "#f00f", want: RGBA{R: 255, A: 1}, wantOK: true},
		{name: "named", value: "red", want: RGBA{R: 255, A: 1}, wantOK: true},
		{name: "named mixed case", value: "White", want: RGBA{R: 255, G: 255, B: 255, A: 1}, wantOK: true},
		{name: "transparent", value: "transparent", want: RGBA{}, wantOK: true},
		{name: "rgb commas", value: "rgb(245, 101, 101)", want: RGBA{R: 245, G: 101, B: 101, A: 1}, wantOK: true},
		{name: "rgba commas", value: "rgba(245, 101, 101, 0.5)", want: RGBA{R: 245, G: 101, B: 101, A: 0.5}, wantOK: true},
		{name: "rgb space slash", value: "rgb(245 101 101 / 50%)", want: RGBA{R: 245, G: 101, B: 101, A: 0.5}, wantOK: true},
		{name: "rgb percentages", value: "rgb(100%, 0%, 0%)", want: RGBA{R: 255, A: 1}, wantOK: true},
		{name: "hsl", value: "hsl(0, 100%, 50%)", want: RGBA{R: 255, A: 1}, wantOK: true},
		{name: "hsla turn", value: "hsla(0.5turn, 100%, 50%, 0.25)", want: RGBA{G: 255, B: 255, A: 0.25}, wantOK: true},
		{name: "currentColor", value: "currentColor", wantOK: false},
		{name: "inherit", value: "inherit", wantOK: false},
		{name: "unresolved variable", value: "rgba(245, 101, 101, var(--bg-opacity))", wantOK: false},
		{name: "bad hex", value: "#abcde", wantOK: false},
		{name: "empty", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColor(tt.value)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatRGBA_RoundTrips(t *testing.T) {
	for _, in := range []string{"#FAD0D0", "transparent", "rgba(1, 2, 3, 0.4)", "#12345680"} {
		c, ok := ParseColor(in)
		require.True(t, ok, in)

		again, ok := ParseColor(FormatRGBA(c))
		require.True(t, ok, in)
		assert.Equal(t, FormatRGBA(c), FormatRGBA(again), in)
	}
	assert.Equal(t, "rgba(0, 0, 0, 0)", FormatRGBA(RGBA{}))
}

func TestColorDistance(t *testing.T) {
	a := RGBA{R: 10, G: 10, B: 10, A: 1}
	assert.InDelta(t, 0.0, ColorDistance(a, a), 1e-9)
	assert.InDelta(t, 5.0, ColorDistance(a, RGBA{R: 13, G: 14, B: 10, A: 1}), 1e-9)
	assert.InDelta(t, 1.0, ColorDistance(RGBA{A: 1}, RGBA{A: 0}), 1e-9)
}
