package selector

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/values"
)

var minWidthPattern = regexp.MustCompile(`(?i)min-width\s*:\s*([^)\s]+)`)

// Breakpoints maps min-width pixel values to responsive variant names.
type Breakpoints struct {
	scale values.Scale
	names map[float64]string
	units values.Units
}

// NewBreakpoints builds breakpoints from named screen widths such as
// {"sm": "640px"}. Screens that are not plain sizes are ignored. When two
// names share a width the alphabetically first name is used.
func NewBreakpoints(screens map[string]string, u values.Units) *Breakpoints {
	names := make([]string, 0, len(screens))
	for name := range screens {
		names = append(names, name)
	}
	sort.Strings(names)

	bp := &Breakpoints{names: make(map[float64]string), units: u}
	var steps []float64
	for _, name := range names {
		px, ok := values.ParseSize(screens[name], u)
		if !ok {
			continue
		}
		if _, taken := bp.names[px]; taken {
			continue
		}
		bp.names[px] = name
		steps = append(steps, px)
	}
	bp.scale = values.NewScale(steps...)
	return bp
}

// DefaultBreakpoints returns the standard sm/md/lg/xl screens.
func DefaultBreakpoints() *Breakpoints {
	return NewBreakpoints(map[string]string{
		"sm": "640px",
		"md": "768px",
		"lg": "1024px",
		"xl": "1280px",
	}, values.DefaultUnits)
}

// Scale returns the ascending breakpoint widths.
func (b *Breakpoints) Scale() values.Scale {
	return b.scale
}

// Name returns the variant name of an exact breakpoint width.
func (b *Breakpoints) Name(px float64) (string, bool) {
	name, ok := b.names[px]
	return name, ok
}

// FromMedia resolves the min-width feature of a media query to a variant
// name. found is false when params has no min-width feature. A min-width that
// cannot be mapped to a breakpoint is an ErrUnsupportedMedia error.
func (b *Breakpoints) FromMedia(params string) (name string, found bool, err error) {
	m := minWidthPattern.FindStringSubmatch(params)
	if m == nil {
		return "", false, nil
	}

	px, ok := values.ParseSize(m[1], b.units)
	if !ok {
		return "", true, fmt.Errorf("%w: %q", cssmodel.ErrUnsupportedMedia, params)
	}
	name, ok = b.Name(b.scale.Nearest(px))
	if !ok {
		return "", true, fmt.Errorf("%w: %q", cssmodel.ErrUnsupportedMedia, params)
	}
	return name, true, nil
}

// HasMinWidth reports whether media query params carry a min-width feature.
func HasMinWidth(params string) bool {
	return minWidthPattern.MatchString(params)
}
