// Package csstw converts plain CSS rules into Tailwind utility classes.
//
// Every input selector is decomposed into a base selector and its variants
// (hover, focus, placeholder and responsive breakpoints). Declarations are
// expanded to longhands and snapped onto the theme's scales, then compared
// against a compiled Tailwind stylesheet normalized the same way. The result
// lists, per selector, the smallest set of utility classes reproducing it and
// the declarations no class covers.
//
// # Converting
//
//	c := csstw.New(csstw.DefaultOptions(), nil)
//	results, err := c.Convert(ctx, ".foo { padding: 1.6rem; }", tailwindCSS)
//	// results[0].Tailwind == "p-6"
//
// # Reference stylesheet
//
// The reference is any Tailwind build. CompileReference produces one by
// running the Tailwind CLI over Options.PreprocessorInput with the options'
// theme:
//
//	ref, err := c.CompileReference(ctx, csstw.NewExecCompiler(nil, nil))
//
// # CLI Tool
//
// Install with:
//
//	go install github.com/yacobolo/csstw/cmd/csstw@latest
package csstw

import (
	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/reference"
	"github.com/yacobolo/csstw/internal/theme"
	"go.uber.org/zap"
)

type (
	// Result is the conversion of one input selector.
	Result = cssmodel.Result
	// FileResult holds the results of one converted input file.
	FileResult = cssmodel.FileResult
	// Declaration is a [property, value] pair.
	Declaration = cssmodel.Declaration
	// Theme holds the design scales values are snapped to.
	Theme = theme.Theme
	// Compiler produces a reference stylesheet.
	Compiler = reference.Compiler
	// FileCompiler reads a reference stylesheet compiled ahead of time.
	FileCompiler = reference.FileCompiler
)

var (
	// ErrUnsupportedMedia is returned for a min-width media query that
	// matches no configured screen.
	ErrUnsupportedMedia = cssmodel.ErrUnsupportedMedia
	// ErrUnknownVariant is returned when the input uses a variant that the
	// reference stylesheet has no classes for.
	ErrUnknownVariant = cssmodel.ErrUnknownVariant
)

// DefaultTheme returns the built-in Tailwind theme.
func DefaultTheme() *Theme { return theme.Default() }

// LoadTheme reads a YAML theme file layered over the default theme.
func LoadTheme(path string) (*Theme, error) { return theme.Load(path) }

// NewExecCompiler returns a compiler that runs command, or the Tailwind CLI
// through npx when command is empty.
func NewExecCompiler(command []string, log *zap.Logger) *reference.ExecCompiler {
	return reference.NewExecCompiler(command, log)
}
