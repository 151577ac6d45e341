package values

import "sort"

// Scale is an ascending list of pixel steps a design system allows.
type Scale []float64

// NewScale sorts and deduplicates steps.
func NewScale(steps ...float64) Scale {
	s := make(Scale, len(steps))
	copy(s, steps)
	sort.Float64s(s)

	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Nearest snaps v to the closest step. Values outside [min, max] are
// returned unchanged. On a tie the lower step wins.
func (s Scale) Nearest(v float64) float64 {
	if len(s) == 0 || v < s[0] || v > s[len(s)-1] {
		return v
	}

	best := s[0]
	bestDist := abs(v - best)
	for _, step := range s[1:] {
		if d := abs(v - step); d < bestDist {
			best, bestDist = step, d
		}
	}
	return best
}

// Contains reports whether v is one of the steps.
func (s Scale) Contains(v float64) bool {
	i := sort.SearchFloat64s(s, v)
	return i < len(s) && s[i] == v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
