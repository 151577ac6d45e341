package theme

import (
	"fmt"
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/yacobolo/csstw/internal/selector"
	"github.com/yacobolo/csstw/internal/values"
)

// FullRoundThreshold is the radius in pixels above which a corner counts as
// fully rounded.
const FullRoundThreshold = 100

// Scales holds the pixel scales derived from a theme. It is read-only once
// built and safe to share between goroutines.
type Scales struct {
	FontSize      values.Scale
	LineHeight    values.Scale
	LetterSpacing values.Scale
	BorderRadius  values.Scale
	BorderWidth   values.Scale
	Width         values.Scale
	Height        values.Scale
	Margin        values.Scale
	Padding       values.Scale
	Gap           values.Scale

	Breakpoints *selector.Breakpoints
	Units       values.Units
	FullRound   float64
}

// NewScales derives pixel scales from t.
func NewScales(t *Theme, u values.Units, fullRound float64) *Scales {
	var radius []float64
	for _, px := range t.BorderRadius.Sizes(u) {
		if px < FullRoundThreshold {
			radius = append(radius, px)
		}
	}

	return &Scales{
		FontSize:      t.FontSize.Sizes(u),
		LineHeight:    t.LineHeight.Sizes(u),
		LetterSpacing: t.LetterSpacing.Sizes(u),
		BorderRadius:  values.NewScale(radius...),
		BorderWidth:   t.BorderWidth.Sizes(u),
		Width:         t.Width.Sizes(u),
		Height:        t.Height.Sizes(u),
		Margin:        t.Margin.Sizes(u),
		Padding:       t.Padding.Sizes(u),
		Gap:           t.Gap.Sizes(u),
		Breakpoints:   selector.NewBreakpoints(t.Screens, u),
		Units:         u,
		FullRound:     fullRound,
	}
}

// Key is the structural hash of the inputs Scales are built from.
func Key(t *Theme, u values.Units, fullRound float64) (uint64, error) {
	h, err := hashstructure.Hash(struct {
		Theme     *Theme
		Units     values.Units
		FullRound float64
	}{t, u, fullRound}, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("hash theme: %w", err)
	}
	return h, nil
}

// Cache memoizes Scales by the structural hash of their inputs, so a theme
// edited in place gets fresh scales on its next use.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*Scales
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*Scales)}
}

// Scales returns the scales for t, building them on first use. The returned
// key identifies the scales for callers that cache derived data.
func (c *Cache) Scales(t *Theme, u values.Units, fullRound float64) (*Scales, uint64, error) {
	key, err := Key(t, u, fullRound)
	if err != nil {
		return nil, 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.entries[key]; ok {
		return s, key, nil
	}
	s := NewScales(t, u, fullRound)
	c.entries[key] = s
	return s, key, nil
}

// Len returns the number of cached scale sets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
