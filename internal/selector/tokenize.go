// Package selector splits CSS selectors into a base selector and the
// interaction or responsive variants it applies under.
package selector

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind classifies a structural selector token.
type Kind int

const (
	Tag Kind = iota
	Class
	ID
	Universal
	Attribute
	Pseudo
	Combinator
	Comma
)

func (k Kind) String() string {
	switch k {
	case Tag:
		return "tag"
	case Class:
		return "class"
	case ID:
		return "id"
	case Universal:
		return "universal"
	case Attribute:
		return "attribute"
	case Pseudo:
		return "pseudo"
	case Combinator:
		return "combinator"
	case Comma:
		return "comma"
	default:
		return "unknown"
	}
}

// Token is one structural element of a selector. Value holds the raw source
// text without the "." or "#" prefix for classes and ids; pseudo tokens keep
// their colons (":hover", "::placeholder", ":not(.a)"). Combinator values are
// " ", ">", "+" or "~".
type Token struct {
	Kind  Kind
	Value string
}

// String renders the token as it appears in a selector.
func (t Token) String() string {
	switch t.Kind {
	case Class:
		return "." + t.Value
	case ID:
		return "#" + t.Value
	case Comma:
		return ","
	default:
		return t.Value
	}
}

// IsStructural reports whether the token selects an element (anything but a
// pseudo, a combinator or a list separator).
func (t Token) IsStructural() bool {
	switch t.Kind {
	case Pseudo, Combinator, Comma:
		return false
	default:
		return true
	}
}

// Tokenize lexes selector into structural tokens. Runs of whitespace become a
// single descendant combinator, and whitespace around explicit combinators
// and commas is dropped.
func Tokenize(selector string) []Token {
	l := css.NewLexer(parse.NewInputString(selector))

	var tokens []Token
	pendingSpace := false

	emit := func(tok Token) {
		if tok.Kind == Combinator || tok.Kind == Comma {
			// an explicit combinator replaces any descendant space
			if n := len(tokens); n > 0 && tokens[n-1].Kind == Combinator && tokens[n-1].Value == " " {
				tokens = tokens[:n-1]
			}
			pendingSpace = false
			tokens = append(tokens, tok)
			return
		}
		if pendingSpace && len(tokens) > 0 {
			if last := tokens[len(tokens)-1]; last.Kind != Combinator && last.Kind != Comma {
				tokens = append(tokens, Token{Kind: Combinator, Value: " "})
			}
		}
		pendingSpace = false
		tokens = append(tokens, tok)
	}

	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return trimCombinators(tokens)

		case css.WhitespaceToken, css.CommentToken:
			pendingSpace = true

		case css.IdentToken:
			emit(Token{Kind: Tag, Value: string(data)})

		case css.HashToken:
			emit(Token{Kind: ID, Value: strings.TrimPrefix(string(data), "#")})

		case css.CommaToken:
			emit(Token{Kind: Comma})

		case css.ColonToken:
			emit(Token{Kind: Pseudo, Value: readPseudo(l)})

		case css.LeftBracketToken:
			emit(Token{Kind: Attribute, Value: "[" + readUntilClose(l, css.LeftBracketToken, css.RightBracketToken)})

		case css.DelimToken:
			switch data[0] {
			case '.':
				next, name := l.Next()
				if next == css.IdentToken {
					emit(Token{Kind: Class, Value: string(name)})
				} else {
					emit(Token{Kind: Tag, Value: "." + string(name)})
				}
			case '*':
				emit(Token{Kind: Universal, Value: "*"})
			case '>', '+', '~':
				emit(Token{Kind: Combinator, Value: string(data)})
			default:
				emit(Token{Kind: Tag, Value: string(data)})
			}

		default:
			emit(Token{Kind: Tag, Value: string(data)})
		}
	}
}

// readPseudo consumes the remainder of a pseudo-class or pseudo-element
// after its first colon.
func readPseudo(l *css.Lexer) string {
	var sb strings.Builder
	sb.WriteByte(':')
	for {
		tt, data := l.Next()
		switch tt {
		case css.ColonToken:
			sb.WriteByte(':')
		case css.FunctionToken:
			sb.Write(data)
			sb.WriteString(readUntilClose(l, css.FunctionToken, css.RightParenthesisToken))
			return sb.String()
		default:
			sb.Write(data)
			return sb.String()
		}
	}
}

// readUntilClose consumes tokens up to and including the close token that
// balances an already consumed open token.
func readUntilClose(l *css.Lexer, open, close css.TokenType) string {
	var sb strings.Builder
	depth := 1
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return sb.String()
		}
		sb.Write(data)
		switch {
		case tt == open || (open == css.FunctionToken && tt == css.LeftParenthesisToken):
			depth++
		case tt == close:
			depth--
			if depth == 0 {
				return sb.String()
			}
		}
	}
}

func trimCombinators(tokens []Token) []Token {
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind == Combinator {
		tokens = tokens[:len(tokens)-1]
	}
	for len(tokens) > 0 && tokens[0].Kind == Combinator && tokens[0].Value == " " {
		tokens = tokens[1:]
	}
	return tokens
}

// Render joins tokens back into a selector string.
func Render(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.Kind == Comma {
			sb.WriteString(", ")
			continue
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// SplitList splits tokens at top-level commas.
func SplitList(tokens []Token) [][]Token {
	var parts [][]Token
	start := 0
	for i, t := range tokens {
		if t.Kind == Comma {
			parts = append(parts, trimCombinators(tokens[start:i]))
			start = i + 1
		}
	}
	return append(parts, trimCombinators(tokens[start:]))
}
