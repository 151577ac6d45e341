package selector

import (
	"slices"
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// Variant names produced from pseudo-classes and pseudo-elements.
const (
	Hover       = "hover"
	Focus       = "focus"
	Placeholder = "placeholder"
)

// Decomposed is a selector split into its base selector and variants.
type Decomposed struct {
	Base     string
	Variants []string // sorted, deduplicated; empty in the base state
}

// Key returns the variant key used to group declarations.
func (d Decomposed) Key() string {
	return VariantKey(d.Variants)
}

// VariantKey joins sorted variants with commas. No variants is the default key.
func VariantKey(variants []string) string {
	if len(variants) == 0 {
		return cssmodel.DefaultVariant
	}
	return strings.Join(variants, ",")
}

// Decompose strips trailing hover, focus and placeholder pseudos off selector
// and adds the responsive variant named by mediaParams. The walk starts at
// the rightmost token and stops at the first token that is not one of those
// pseudos, so ".a:hover .b" keeps its hover in the base selector.
//
// A selector list is decomposed member by member. When all members agree on
// their variants the base is the list of member bases; otherwise the list is
// kept whole with no interaction variants.
func Decompose(selector, mediaParams string, bps *Breakpoints) (Decomposed, error) {
	var variants []string
	if mediaParams != "" {
		if bps == nil {
			bps = DefaultBreakpoints()
		}
		name, found, err := bps.FromMedia(mediaParams)
		if err != nil {
			return Decomposed{}, err
		}
		if found {
			variants = append(variants, name)
		}
	}

	tokens := Tokenize(selector)
	parts := SplitList(tokens)

	bases := make([]string, 0, len(parts))
	var pseudos []string
	for i, part := range parts {
		base, found := stripVariants(part)
		slices.Sort(found)
		found = slices.Compact(found)
		if i > 0 && !slices.Equal(found, pseudos) {
			// members disagree: keep the list opaque
			return Decomposed{Base: Render(tokens), Variants: canonical(variants)}, nil
		}
		pseudos = found
		bases = append(bases, Render(base))
	}

	return Decomposed{
		Base:     strings.Join(bases, ", "),
		Variants: canonical(append(variants, pseudos...)),
	}, nil
}

func stripVariants(tokens []Token) (base []Token, variants []string) {
	i := len(tokens) - 1
	for ; i >= 0 && tokens[i].Kind == Pseudo; i-- {
		v := pseudoVariant(tokens[i].Value)
		if v == "" {
			break
		}
		variants = append(variants, v)
	}
	return trimCombinators(tokens[:i+1]), variants
}

// pseudoVariant maps a pseudo token to its variant name, or "" when the
// pseudo is not a variant.
func pseudoVariant(pseudo string) string {
	name := strings.ToLower(strings.TrimLeft(pseudo, ":"))
	for _, prefix := range []string{"-webkit-", "-moz-", "-ms-"} {
		name = strings.TrimPrefix(name, prefix)
	}

	switch name {
	case Hover:
		return Hover
	case Focus:
		return Focus
	case Placeholder, "input-placeholder":
		return Placeholder
	default:
		return ""
	}
}

func canonical(variants []string) []string {
	if len(variants) == 0 {
		return []string{}
	}
	out := slices.Clone(variants)
	slices.Sort(out)
	return slices.Compact(out)
}

// EndsInPseudo reports whether the last token of base is a pseudo-class or
// pseudo-element, as left behind by pseudos that are not variants.
func EndsInPseudo(base string) bool {
	tokens := Tokenize(base)
	return len(tokens) > 0 && tokens[len(tokens)-1].Kind == Pseudo
}

// ClassName turns a reference base selector such as ".hover\:bg-white" into
// the utility class name "hover:bg-white".
func ClassName(base string) string {
	return Unescape(strings.TrimPrefix(base, "."))
}

// Unescape removes CSS backslash escapes. Hex escapes ("\31 ") are decoded.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if !isHex(s[i]) {
			sb.WriteByte(s[i])
			continue
		}

		j := i
		var r rune
		for ; j < len(s) && j < i+6 && isHex(s[j]); j++ {
			r = r<<4 | rune(hexVal(s[j]))
		}
		sb.WriteRune(r)
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return sb.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
