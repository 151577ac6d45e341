package normalize

import (
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/values"
)

// shorthand describes how one shorthand property expands. expand returns nil
// when the value is not understood; the declaration is then kept as written.
type shorthand struct {
	longhands []string
	expand    func(parts []string, longhands []string) []cssmodel.Declaration
}

var sides = []string{"top", "right", "bottom", "left"}

func sideProps(format string) []string {
	out := make([]string, len(sides))
	for i, s := range sides {
		out[i] = strings.Replace(format, "%s", s, 1)
	}
	return out
}

// shorthands is the expansion table, keyed by shorthand property.
var shorthands = map[string]shorthand{
	"padding":       {longhands: sideProps("padding-%s"), expand: expandBox},
	"margin":        {longhands: sideProps("margin-%s"), expand: expandBox},
	"inset":         {longhands: sideProps("%s"), expand: expandBox},
	"border-width":  {longhands: sideProps("border-%s-width"), expand: expandBox},
	"border-style":  {longhands: sideProps("border-%s-style"), expand: expandBox},
	"border-color":  {longhands: sideProps("border-%s-color"), expand: expandBox},
	"border":        {longhands: borderLonghands(sides...), expand: expandBorder},
	"border-top":    {longhands: borderLonghands("top"), expand: expandBorder},
	"border-right":  {longhands: borderLonghands("right"), expand: expandBorder},
	"border-bottom": {longhands: borderLonghands("bottom"), expand: expandBorder},
	"border-left":   {longhands: borderLonghands("left"), expand: expandBorder},
	"outline":       {longhands: []string{"outline-width", "outline-style", "outline-color"}, expand: expandBorder},
	"gap":           {longhands: []string{"row-gap", "column-gap"}, expand: expandPair},
	"grid-gap":      {longhands: []string{"row-gap", "column-gap"}, expand: expandPair},
	"overflow":      {longhands: []string{"overflow-x", "overflow-y"}, expand: expandPair},
	"flex":          {longhands: []string{"flex-grow", "flex-shrink", "flex-basis"}, expand: expandFlex},
	"flex-flow":     {longhands: []string{"flex-direction", "flex-wrap"}, expand: expandFlexFlow},
	"list-style":    {longhands: []string{"list-style-type", "list-style-position", "list-style-image"}, expand: expandListStyle},
	"background": {
		longhands: []string{
			"background-color", "background-image", "background-repeat",
			"background-attachment", "background-position", "background-size",
		},
		expand: expandBackground,
	},
	"font": {
		longhands: []string{
			"font-style", "font-variant", "font-weight", "font-stretch",
			"font-size", "line-height", "font-family",
		},
		expand: expandFont,
	},
}

// borderLonghands lists width, style and color for each side.
func borderLonghands(ss ...string) []string {
	var out []string
	for _, s := range ss {
		for _, part := range []string{"width", "style", "color"} {
			out = append(out, "border-"+s+"-"+part)
		}
	}
	return out
}

var wideKeywords = map[string]bool{"inherit": true, "initial": true, "unset": true, "revert": true}

// Expand turns a declaration into longhand declarations. Non-shorthands and
// values the table cannot read are returned unchanged.
func Expand(d cssmodel.Declaration) []cssmodel.Declaration {
	sh, ok := shorthands[d.Property]
	if !ok {
		return []cssmodel.Declaration{d}
	}

	parts := splitValue(d.Value)
	if len(parts) == 1 && wideKeywords[strings.ToLower(parts[0])] {
		out := make([]cssmodel.Declaration, len(sh.longhands))
		for i, l := range sh.longhands {
			out[i] = cssmodel.Declaration{Property: l, Value: parts[0]}
		}
		return out
	}

	if out := sh.expand(parts, sh.longhands); len(out) > 0 {
		return out
	}
	return []cssmodel.Declaration{d}
}

// splitValue splits a value on top-level whitespace. A top-level "/" is
// kept as its own part; commas stay attached to the preceding part.
func splitValue(value string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	var quote byte

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n'):
			flush()
		case depth == 0 && c == '/':
			flush()
			parts = append(parts, "/")
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return parts
}

func expandBox(parts []string, longhands []string) []cssmodel.Declaration {
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return nil
	}
	return []cssmodel.Declaration{
		{Property: longhands[0], Value: top},
		{Property: longhands[1], Value: right},
		{Property: longhands[2], Value: bottom},
		{Property: longhands[3], Value: left},
	}
}

func expandPair(parts []string, longhands []string) []cssmodel.Declaration {
	switch len(parts) {
	case 1:
		return []cssmodel.Declaration{
			{Property: longhands[0], Value: parts[0]},
			{Property: longhands[1], Value: parts[0]},
		}
	case 2:
		return []cssmodel.Declaration{
			{Property: longhands[0], Value: parts[0]},
			{Property: longhands[1], Value: parts[1]},
		}
	default:
		return nil
	}
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
	"auto": true,
}

var borderWidths = map[string]bool{"thin": true, "medium": true, "thick": true}

// expandBorder reads up to one width, style and color in any order and sets
// them on every side the longhands cover. Parts that are absent stay unset.
func expandBorder(parts []string, longhands []string) []cssmodel.Declaration {
	if len(parts) > 3 {
		return nil
	}

	var width, style, color string
	for _, p := range parts {
		lower := strings.ToLower(p)
		_, isSize := values.ParseSize(p, values.DefaultUnits)
		switch {
		case width == "" && (isSize || borderWidths[lower]):
			width = p
		case style == "" && borderStyles[lower]:
			style = p
		case color == "":
			color = p
		default:
			return nil
		}
	}

	var out []cssmodel.Declaration
	for i := 0; i+2 < len(longhands); i += 3 {
		if width != "" {
			out = append(out, cssmodel.Declaration{Property: longhands[i], Value: width})
		}
		if style != "" {
			out = append(out, cssmodel.Declaration{Property: longhands[i+1], Value: style})
		}
		if color != "" {
			out = append(out, cssmodel.Declaration{Property: longhands[i+2], Value: color})
		}
	}
	return out
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

func expandFlex(parts []string, longhands []string) []cssmodel.Declaration {
	set := func(grow, shrink, basis string) []cssmodel.Declaration {
		return []cssmodel.Declaration{
			{Property: longhands[0], Value: grow},
			{Property: longhands[1], Value: shrink},
			{Property: longhands[2], Value: basis},
		}
	}

	switch len(parts) {
	case 1:
		switch p := strings.ToLower(parts[0]); {
		case p == "none":
			return set("0", "0", "auto")
		case p == "auto":
			return set("1", "1", "auto")
		case isNumber(p):
			return set(p, "1", "0%")
		default:
			return set("1", "1", parts[0])
		}
	case 2:
		if !isNumber(parts[0]) {
			return nil
		}
		if isNumber(parts[1]) {
			return set(parts[0], parts[1], "0%")
		}
		return set(parts[0], "1", parts[1])
	case 3:
		if !isNumber(parts[0]) || !isNumber(parts[1]) {
			return nil
		}
		return set(parts[0], parts[1], parts[2])
	default:
		return nil
	}
}

var flexDirections = map[string]bool{"row": true, "row-reverse": true, "column": true, "column-reverse": true}

var flexWraps = map[string]bool{"nowrap": true, "wrap": true, "wrap-reverse": true}

func expandFlexFlow(parts []string, longhands []string) []cssmodel.Declaration {
	var out []cssmodel.Declaration
	for _, p := range parts {
		switch lower := strings.ToLower(p); {
		case flexDirections[lower]:
			out = append(out, cssmodel.Declaration{Property: longhands[0], Value: p})
		case flexWraps[lower]:
			out = append(out, cssmodel.Declaration{Property: longhands[1], Value: p})
		default:
			return nil
		}
	}
	return out
}

func expandListStyle(parts []string, longhands []string) []cssmodel.Declaration {
	var out []cssmodel.Declaration
	for _, p := range parts {
		switch lower := strings.ToLower(p); {
		case lower == "inside" || lower == "outside":
			out = append(out, cssmodel.Declaration{Property: longhands[1], Value: p})
		case strings.HasPrefix(lower, "url("):
			out = append(out, cssmodel.Declaration{Property: longhands[2], Value: p})
		default:
			out = append(out, cssmodel.Declaration{Property: longhands[0], Value: p})
		}
	}
	return out
}

var (
	bgRepeats     = map[string]bool{"repeat": true, "repeat-x": true, "repeat-y": true, "no-repeat": true, "space": true, "round": true}
	bgAttachments = map[string]bool{"scroll": true, "fixed": true, "local": true}
)

// expandBackground handles a single background layer.
func expandBackground(parts []string, longhands []string) []cssmodel.Declaration {
	var color, image string
	var repeat, attachment, position, size []string
	afterSlash := false

	for _, p := range parts {
		if strings.HasSuffix(p, ",") {
			return nil // multiple layers
		}
		lower := strings.ToLower(p)
		switch {
		case p == "/":
			afterSlash = true
		case afterSlash:
			size = append(size, p)
		case lower == "none" || strings.HasPrefix(lower, "url(") || strings.Contains(lower, "gradient("):
			image = p
		case bgRepeats[lower]:
			repeat = append(repeat, p)
		case bgAttachments[lower]:
			attachment = append(attachment, p)
		default:
			if _, ok := values.ParseColor(p); ok && color == "" {
				color = p
				continue
			}
			position = append(position, p)
		}
	}

	var out []cssmodel.Declaration
	add := func(i int, v string) {
		if v != "" {
			out = append(out, cssmodel.Declaration{Property: longhands[i], Value: v})
		}
	}
	add(0, color)
	add(1, image)
	add(2, strings.Join(repeat, " "))
	add(3, strings.Join(attachment, " "))
	add(4, strings.Join(position, " "))
	add(5, strings.Join(size, " "))
	return out
}

var (
	fontStyles   = map[string]bool{"italic": true, "oblique": true}
	fontVariants = map[string]bool{"small-caps": true}
	fontWeights  = map[string]bool{
		"bold": true, "bolder": true, "lighter": true,
		"100": true, "200": true, "300": true, "400": true, "500": true,
		"600": true, "700": true, "800": true, "900": true,
	}
	fontStretches = map[string]bool{
		"ultra-condensed": true, "extra-condensed": true, "condensed": true, "semi-condensed": true,
		"semi-expanded": true, "expanded": true, "extra-expanded": true, "ultra-expanded": true,
	}
	fontSizeKeywords = map[string]bool{
		"xx-small": true, "x-small": true, "small": true, "medium": true, "large": true,
		"x-large": true, "xx-large": true, "xxx-large": true, "smaller": true, "larger": true,
	}
)

// expandFont reads [style] [variant] [weight] [stretch] size[/line-height]
// family. System font keywords are left unexpanded.
func expandFont(parts []string, longhands []string) []cssmodel.Declaration {
	var out []cssmodel.Declaration
	add := func(i int, v string) {
		out = append(out, cssmodel.Declaration{Property: longhands[i], Value: v})
	}

	i := 0
	for ; i < len(parts); i++ {
		p := parts[i]
		lower := strings.ToLower(p)
		if _, ok := values.ParseSize(p, values.DefaultUnits); ok || strings.HasSuffix(p, "%") || fontSizeKeywords[lower] {
			break
		}
		switch {
		case lower == "normal":
		case fontStyles[lower]:
			add(0, p)
		case fontVariants[lower]:
			add(1, p)
		case fontWeights[lower]:
			add(2, p)
		case fontStretches[lower]:
			add(3, p)
		default:
			return nil
		}
	}
	if i >= len(parts)-1 {
		return nil // a size and a family are required
	}

	add(4, parts[i])
	i++
	if parts[i] == "/" {
		if i+2 >= len(parts) {
			return nil
		}
		add(5, parts[i+1])
		i += 2
	}
	add(6, strings.Join(parts[i:], " "))
	return out
}
