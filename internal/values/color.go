package values

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGBA is a color with 0-255 channels and a 0-1 alpha.
type RGBA struct {
	R, G, B float64
	A       float64
}

// String renders the canonical rgba(r, g, b, a) form.
func (c RGBA) String() string {
	return FormatRGBA(c)
}

// FormatRGBA renders c as "rgba(r, g, b, a)".
func FormatRGBA(c RGBA) string {
	var sb strings.Builder
	sb.WriteString("rgba(")
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteString(", ")
	sb.WriteString(FormatNumber(c.A))
	sb.WriteString(")")
	return sb.String()
}

// ColorDistance is the Euclidean distance between a and b over all four
// components.
func ColorDistance(a, b RGBA) float64 {
	dr, dg, db, da := a.R-b.R, a.G-b.G, a.B-b.B, a.A-b.A
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

// ParseColor parses named, hex, rgb(a) and hsl(a) colors. ok is false when
// value is not a color (currentColor, inherit, gradients, ...).
func ParseColor(value string) (c RGBA, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return RGBA{}, false
	}

	switch {
	case v == "transparent":
		return RGBA{}, true
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseRGBFunc(v)
	case strings.HasPrefix(v, "hsl(") || strings.HasPrefix(v, "hsla("):
		return parseHSLFunc(v)
	}

	if named, ok := colornames.Map[v]; ok {
		return RGBA{R: float64(named.R), G: float64(named.G), B: float64(named.B), A: 1}, true
	}
	return RGBA{}, false
}

func parseHex(v string) (RGBA, bool) {
	digits := v[1:]
	alpha := 1.0

	switch len(digits) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		alpha = float64(a) / 255
		digits = digits[:3]
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	case 3, 6:
	default:
		return RGBA{}, false
	}

	col, err := colorful.Hex("#" + digits)
	if err != nil {
		return RGBA{}, false
	}
	return fromColorful(col, alpha), true
}

func parseRGBFunc(v string) (RGBA, bool) {
	args, ok := functionArgs(v)
	if !ok || len(args) < 3 || len(args) > 4 {
		return RGBA{}, false
	}

	var ch [3]float64
	for i := range 3 {
		n, ok := parseChannel(args[i])
		if !ok {
			return RGBA{}, false
		}
		ch[i] = clamp(math.Round(n), 0, 255)
	}

	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return RGBA{}, false
		}
		alpha = a
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}

func parseHSLFunc(v string) (RGBA, bool) {
	args, ok := functionArgs(v)
	if !ok || len(args) < 3 || len(args) > 4 {
		return RGBA{}, false
	}

	h, ok := parseHue(args[0])
	if !ok {
		return RGBA{}, false
	}
	s, ok := parsePercent(args[1])
	if !ok {
		return RGBA{}, false
	}
	l, ok := parsePercent(args[2])
	if !ok {
		return RGBA{}, false
	}

	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return RGBA{}, false
		}
		alpha = a
	}
	return fromColorful(colorful.Hsl(h, clamp(s, 0, 1), clamp(l, 0, 1)), alpha), true
}

// functionArgs splits "fn(a, b, c / d)" into its arguments. Commas, spaces
// and the slash before alpha all separate arguments.
func functionArgs(v string) ([]string, bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return nil, false
	}
	inner := v[open+1 : len(v)-1]
	fields := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t' || r == '\n'
	})
	return fields, len(fields) > 0
}

func parseChannel(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		p, ok := parsePercent(s)
		return p * 255, ok
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

func parseAlpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		p, ok := parsePercent(s)
		return clamp(p, 0, 1), ok
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp(n, 0, 1), true
}

// parsePercent returns a percentage as a fraction of 1.
func parsePercent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return n / 100, true
}

// parseHue returns degrees in [0, 360).
func parseHue(s string) (float64, bool) {
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "deg"):
		s = strings.TrimSuffix(s, "deg")
	case strings.HasSuffix(s, "grad"):
		s, factor = strings.TrimSuffix(s, "grad"), 360.0/400
	case strings.HasSuffix(s, "rad"):
		s, factor = strings.TrimSuffix(s, "rad"), 180/math.Pi
	case strings.HasSuffix(s, "turn"):
		s, factor = strings.TrimSuffix(s, "turn"), 360
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	h := math.Mod(n*factor, 360)
	if h < 0 {
		h += 360
	}
	return h, true
}

func fromColorful(c colorful.Color, alpha float64) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: float64(r), G: float64(g), B: float64(b), A: alpha}
}

func clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}
