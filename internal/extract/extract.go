// Package extract walks a stylesheet and collects its rules as ordered
// declaration lists, grouped by variant and base selector.
package extract

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// Stylesheet is the extracted form of one CSS source.
type Stylesheet struct {
	Rules    []cssmodel.RuleRecord
	Warnings []string
}

// Extractor parses CSS into rule records.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("extractor")}
}

// ExtractString is Extract over an in-memory stylesheet.
func (e *Extractor) ExtractString(src string) (*Stylesheet, error) {
	return e.Extract(strings.NewReader(src))
}

// Extract reads a stylesheet and returns its rules in source order. Rules
// with the same selector inside the same @media block are merged. @layer
// blocks are walked as if their rules were top level; every other block
// at-rule is skipped.
func (e *Extractor) Extract(r io.Reader) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	index := make(map[string]int)

	p := css.NewParser(parse.NewInput(r), false)

	// media holds the params of the enclosing @media blocks; "" marks
	// a transparent block such as @layer.
	var media []string

	for {
		gt, _, data := p.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil {
				if errors.Is(err, io.EOF) {
					e.log.Debug("Extracted stylesheet", zap.Int("rules", len(sheet.Rules)))
					return sheet, nil
				}
				return nil, fmt.Errorf("parse css: %w", err)
			}
			sheet.Warnings = append(sheet.Warnings, "skipped malformed css near "+tokensString(data, p.Values()))

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			params := tokensString(nil, p.Values(), css.ColonToken, css.CommaToken)
			switch name {
			case "@media":
				media = append(media, params)
			case "@layer":
				media = append(media, "")
			default:
				e.log.Debug("Skipping @-rule", zap.String("rule", name), zap.String("params", params))
				skipAtRuleBlock(p)
			}

		case css.EndAtRuleGrammar:
			if len(media) > 0 {
				media = media[:len(media)-1]
			}

		case css.AtRuleGrammar:
			e.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selector := tokensString(data, p.Values(), css.CommaToken)
			decls := readDeclarations(p)
			if selector == "" || len(decls) == 0 {
				continue
			}

			rec := cssmodel.RuleRecord{Selector: selector}
			if params := joinMedia(media); params != "" {
				rec.AtRuleName = "media"
				rec.AtRuleParams = params
			}

			key := rec.AtRuleParams + "\x00" + selector
			if i, ok := index[key]; ok {
				sheet.Rules[i].Declarations = append(sheet.Rules[i].Declarations, decls...)
				continue
			}
			rec.Declarations = decls
			index[key] = len(sheet.Rules)
			sheet.Rules = append(sheet.Rules, rec)
		}
	}
}

// readDeclarations consumes declarations up to the end of the current
// ruleset, preserving their order.
func readDeclarations(p *css.Parser) []cssmodel.Declaration {
	var decls []cssmodel.Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			prop := string(data)
			if gt == css.DeclarationGrammar {
				prop = strings.ToLower(prop)
			}
			value := stripImportant(tokensString(nil, p.Values()))
			if value == "" {
				continue
			}
			decls = append(decls, cssmodel.Declaration{Property: prop, Value: value})
		}
	}
}

// skipAtRuleBlock consumes an unsupported at-rule block including any
// nested blocks.
func skipAtRuleBlock(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() != nil {
				return
			}
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		}
	}
}

// tokensString joins data and tokens into source text. The parser drops the
// whitespace after some tokens, so a single space is put back after the
// token types in spaceAfter.
func tokensString(data []byte, tokens []css.Token, spaceAfter ...css.TokenType) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range tokens {
		sb.Write(t.Data)
		if slices.Contains(spaceAfter, t.TokenType) {
			sb.WriteByte(' ')
		}
	}
	return normalizeWhitespace(sb.String())
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripImportant(value string) string {
	lower := strings.ToLower(value)
	if i := strings.LastIndex(lower, "!important"); i >= 0 && strings.TrimSpace(lower[i+len("!important"):]) == "" {
		return strings.TrimSpace(value[:i])
	}
	return value
}

func joinMedia(media []string) string {
	var parts []string
	for _, m := range media {
		if m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, " and ")
}
