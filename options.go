package csstw

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/yacobolo/csstw/internal/extract"
	"github.com/yacobolo/csstw/internal/theme"
	"github.com/yacobolo/csstw/internal/values"
)

// DefaultPreprocessorInput emits Tailwind's three layers.
const DefaultPreprocessorInput = "@tailwind base;\n\n@tailwind components;\n\n@tailwind utilities;"

// Options configures a conversion.
type Options struct {
	// ColorDelta is the RGBA distance below which two colors are equal.
	ColorDelta float64
	// FullRound is the border radius, in pixels, that stands for fully
	// rounded corners.
	FullRound float64
	// Rem and Em are the pixel sizes of the relative units.
	Rem float64
	Em  float64
	// PreprocessorInput is the CSS fed to the reference compiler.
	PreprocessorInput string
	// Theme provides the scales. Nil means the default theme.
	Theme *theme.Theme
	// Denylist excludes reference classes whose selector contains one of
	// these substrings.
	Denylist []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ColorDelta:        2,
		FullRound:         9999,
		Rem:               values.DefaultUnits.Rem,
		Em:                values.DefaultUnits.Em,
		PreprocessorInput: DefaultPreprocessorInput,
		Theme:             theme.Default(),
		Denylist:          slices.Clone(extract.DefaultDenylist),
	}
}

// Validate reports options no conversion can run with.
func (o Options) Validate() error {
	var err error
	if o.ColorDelta < 0 {
		err = multierr.Append(err, fmt.Errorf("color delta must not be negative, got %v", o.ColorDelta))
	}
	if o.FullRound <= 0 {
		err = multierr.Append(err, fmt.Errorf("full round must be positive, got %v", o.FullRound))
	}
	if o.Rem <= 0 {
		err = multierr.Append(err, fmt.Errorf("rem must be positive, got %v", o.Rem))
	}
	if o.Em <= 0 {
		err = multierr.Append(err, fmt.Errorf("em must be positive, got %v", o.Em))
	}
	return err
}

func (o Options) units() values.Units {
	return values.Units{Rem: o.Rem, Em: o.Em}
}

func (o Options) theme() *theme.Theme {
	if o.Theme == nil {
		return theme.Default()
	}
	return o.Theme
}
