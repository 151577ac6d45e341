// Package theme loads the design scales that CSS values are snapped to.
package theme

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/yacobolo/csstw/internal/values"
)

//go:embed default_theme.yaml
var defaultThemeYAML []byte

// Scale maps a utility suffix to its CSS value, e.g. "6" -> "1.5rem".
type Scale map[string]string

// Theme is the subset of a Tailwind theme that drives normalization.
type Theme struct {
	Screens       Scale `json:"screens,omitempty"`
	Spacing       Scale `json:"spacing,omitempty"`
	FontSize      Scale `json:"fontSize,omitempty"`
	LineHeight    Scale `json:"lineHeight,omitempty"`
	LetterSpacing Scale `json:"letterSpacing,omitempty"`
	BorderRadius  Scale `json:"borderRadius,omitempty"`
	BorderWidth   Scale `json:"borderWidth,omitempty"`
	Width         Scale `json:"width,omitempty"`
	Height        Scale `json:"height,omitempty"`
	Margin        Scale `json:"margin,omitempty"`
	Padding       Scale `json:"padding,omitempty"`
	Gap           Scale `json:"gap,omitempty"`
}

// scale keys contain "." (0.5) and "/" (1/2), so paths use a delimiter
// that cannot appear in them.
const delim = "::"

func (t *Theme) fields() map[string]*Scale {
	return map[string]*Scale{
		"screens":       &t.Screens,
		"spacing":       &t.Spacing,
		"fontSize":      &t.FontSize,
		"lineHeight":    &t.LineHeight,
		"letterSpacing": &t.LetterSpacing,
		"borderRadius":  &t.BorderRadius,
		"borderWidth":   &t.BorderWidth,
		"width":         &t.Width,
		"height":        &t.Height,
		"margin":        &t.Margin,
		"padding":       &t.Padding,
		"gap":           &t.Gap,
	}
}

// Default returns the built-in theme.
func Default() *Theme {
	t, err := LoadBytes(nil)
	if err != nil {
		panic(fmt.Sprintf("theme: embedded default theme: %v", err))
	}
	return t
}

// Load reads a YAML theme file on top of the default theme. An empty path
// returns the default theme.
func Load(path string) (*Theme, error) {
	if path == "" {
		return LoadBytes(nil)
	}
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	t, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// LoadBytes layers a YAML theme document over the default theme. A scale
// under "theme" replaces the default scale; a scale under "theme.extend" is
// merged into it. Scales the document leaves out that derive from spacing
// (padding, margin, width, height, gap) are derived from the extended
// spacing, then receive their own extensions.
func LoadBytes(data []byte) (*Theme, error) {
	k := koanf.New(delim)
	if err := k.Load(bytesProvider(defaultThemeYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load default theme: %w", err)
	}

	user := koanf.New(delim)
	if len(data) > 0 {
		if err := user.Load(bytesProvider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load theme: %w", err)
		}
	}

	t := &Theme{}
	for name, field := range t.fields() {
		path := "theme" + delim + name
		raw := k.Get(path)
		if user.Exists(path) {
			raw = user.Get(path)
		}
		s, err := toScale(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		*field = s
	}
	if err := t.extend(user, func(name string) bool { return !derived[name] }); err != nil {
		return nil, err
	}
	t.derive()
	if err := t.extend(user, func(name string) bool { return derived[name] }); err != nil {
		return nil, err
	}

	return t, nil
}

// derived names the scales Tailwind computes from spacing.
var derived = map[string]bool{
	"padding": true,
	"gap":     true,
	"margin":  true,
	"width":   true,
	"height":  true,
}

// extend merges the user's theme.extend scales selected by include.
func (t *Theme) extend(user *koanf.Koanf, include func(name string) bool) error {
	for name, field := range t.fields() {
		if !include(name) {
			continue
		}
		ext, err := toScale(user.Get("theme" + delim + "extend" + delim + name))
		if err != nil {
			return fmt.Errorf("extend.%s: %w", name, err)
		}
		if len(ext) == 0 {
			continue
		}
		merged := make(Scale, len(*field)+len(ext))
		for key, v := range *field {
			merged[key] = v
		}
		for key, v := range ext {
			merged[key] = v
		}
		*field = merged
	}
	return nil
}

// fractions are the width fractions Tailwind adds on top of spacing.
var fractions = [][2]int{
	{1, 2}, {1, 3}, {2, 3}, {1, 4}, {2, 4}, {3, 4},
	{1, 5}, {2, 5}, {3, 5}, {4, 5},
	{1, 6}, {2, 6}, {3, 6}, {4, 6}, {5, 6},
	{1, 12}, {2, 12}, {3, 12}, {4, 12}, {5, 12}, {6, 12},
	{7, 12}, {8, 12}, {9, 12}, {10, 12}, {11, 12},
}

// derive fills the scales that Tailwind computes from spacing.
func (t *Theme) derive() {
	if t.Padding == nil {
		t.Padding = t.Spacing.clone()
	}
	if t.Gap == nil {
		t.Gap = t.Spacing.clone()
	}
	if t.Margin == nil {
		m := Scale{"auto": "auto"}
		for key, v := range t.Spacing {
			m[key] = v
			if px, ok := values.ParseSize(v, values.DefaultUnits); ok && px != 0 {
				m["-"+key] = "-" + v
			}
		}
		t.Margin = m
	}
	if t.Width == nil {
		w := Scale{"auto": "auto", "full": "100%", "screen": "100vw"}
		for key, v := range t.Spacing {
			w[key] = v
		}
		for _, f := range fractions {
			w[fmt.Sprintf("%d/%d", f[0], f[1])] = values.FormatNumber(float64(f[0])/float64(f[1])*100) + "%"
		}
		t.Width = w
	}
	if t.Height == nil {
		h := Scale{"auto": "auto", "full": "100%", "screen": "100vh"}
		for key, v := range t.Spacing {
			h[key] = v
		}
		t.Height = h
	}
}

func (s Scale) clone() Scale {
	if s == nil {
		return nil
	}
	out := make(Scale, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the scale keys sorted.
func (s Scale) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sizes returns the ascending pixel values of the entries that are lengths.
func (s Scale) Sizes(u values.Units) values.Scale {
	var steps []float64
	for _, v := range s {
		if px, ok := values.ParseSize(v, u); ok {
			steps = append(steps, px)
		}
	}
	return values.NewScale(steps...)
}

// toScale accepts a map of strings, numbers or lists. A list contributes its
// first element, as in fontSize: ["1rem", {lineHeight: ...}].
func toScale(raw any) (Scale, error) {
	if raw == nil {
		return nil, nil
	}

	out := make(Scale)
	add := func(key string, v any) error {
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				return nil
			}
			v = list[0]
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case int:
			out[key] = fmt.Sprint(val)
		case int64:
			out[key] = fmt.Sprint(val)
		case float64:
			out[key] = values.FormatNumber(val)
		case map[string]any, map[any]any:
			// screen ranges and nested color shades carry no length
		default:
			return fmt.Errorf("unsupported value %v for %q", v, key)
		}
		return nil
	}

	switch m := raw.(type) {
	case map[string]any:
		for key, v := range m {
			if err := add(key, v); err != nil {
				return nil, err
			}
		}
	case map[any]any:
		for key, v := range m {
			if err := add(fmt.Sprint(key), v); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}
	return out, nil
}

// bytesProvider serves an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, fmt.Errorf("theme: bytesProvider does not support Read()")
}
