// Package values converts raw CSS size and color literals into numbers the
// normalizer can compare.
package values

import (
	"regexp"
	"strconv"
	"strings"
)

// Units holds the pixel multipliers for relative units.
type Units struct {
	Rem float64
	Em  float64
}

// DefaultUnits matches the browser default of a 16px root font size.
var DefaultUnits = Units{Rem: 16, Em: 16}

var sizePattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)(px|rem|em)$`)

// ParseSize converts px, rem and em lengths to pixels. The bare literal "0"
// is zero. Anything else (percentages, keywords, unitless numbers, multiple
// values) is not a size and ok is false.
func ParseSize(value string, u Units) (px float64, ok bool) {
	value = strings.TrimSpace(value)
	if value == "0" {
		return 0, true
	}

	m := sizePattern.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "rem":
		return n * u.Rem, true
	case "em":
		return n * u.Em, true
	default:
		return n, true
	}
}

// FormatNumber renders n with the fewest digits that round-trip.
func FormatNumber(n float64) string {
	if n == 0 {
		n = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatPx renders a pixel length, e.g. 25.6 -> "25.6px".
func FormatPx(n float64) string {
	return FormatNumber(n) + "px"
}
