package dumbconf

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/parser"
	"github.com/dumbconf/go-dumbconf/internal/primitive"
	"github.com/dumbconf/go-dumbconf/internal/token"
)

// settings is the formatting policy for synthesized values. indent < 0 means
// "no nesting context, always render inline"; indent >= 0 is the current
// nesting depth for multiline rendering.
type settings struct {
	indent                int
	bareKeys              bool
	inlineSmallContainers bool
}

// defaultSettings is the policy used when splicing values into an existing
// document: synthesized subtrees are rendered inline and never disturb the
// surrounding layout.
var defaultSettings = settings{indent: -1, bareKeys: true, inlineSmallContainers: true}

// indented returns the settings for one nesting level deeper.
func (s settings) indented() settings {
	s.indent++
	return s
}

const indentUnit = "    "

func tok(tp token.Type, src string) token.Token {
	return token.Token{Type: tp, Src: src}
}

// toTokens renders a native value as a token stream under the formatting
// policy. The value must already be in native form (see nativeValue).
func toTokens(val any, s settings, asKey, topLevelMap bool) []token.Token {
	topLevelMap = topLevelMap && s.indent == 0
	switch v := val.(type) {
	case string:
		if asKey && s.bareKeys && primitive.IsBareWord(v) {
			return []token.Token{tok(token.BAREWORD, v)}
		}
		return []token.Token{tok(token.STRING, primitive.DumpString(v))}
	case bool:
		return []token.Token{tok(token.BOOL, primitive.DumpBool(v))}
	case nil:
		return []token.Token{tok(token.NULL, primitive.DumpNull())}
	case int64:
		return []token.Token{tok(token.INT, primitive.DumpInt(v))}
	case float64:
		return []token.Token{tok(token.FLOAT, primitive.DumpFloat(v))}
	case Map:
		if topLevelMap && len(v) > 0 {
			return topLevelMapTokens(v, s)
		}
		return containerTokens(mapContainer(v), s)
	case []any:
		return containerTokens(listContainer(v), s)
	default:
		// nativeValue normalizes every supported input; anything else
		// reaching this point is a defect, not a caller mistake.
		panic(fmt.Sprintf("dumbconf: unexpected native value %T", val))
	}
}

// container abstracts over map and list rendering: brackets, item count,
// and a per-item renderer.
type container struct {
	start token.Token
	end   token.Token
	count int
	item  func(i int, s settings) []token.Token
}

func mapContainer(m Map) container {
	return container{
		start: tok(token.LBRACE, "{"),
		end:   tok(token.RBRACE, "}"),
		count: len(m),
		item: func(i int, s settings) []token.Token {
			return mapItemTokens(m[i], s)
		},
	}
}

func listContainer(l []any) container {
	return container{
		start: tok(token.LBRACK, "["),
		end:   tok(token.RBRACK, "]"),
		count: len(l),
		item: func(i int, s settings) []token.Token {
			return toTokens(l[i], s, false, false)
		},
	}
}

func mapItemTokens(e Entry, s settings) []token.Token {
	out := toTokens(e.Key, s, true, false)
	out = append(out, tok(token.COLON, ":"), tok(token.SPACE, " "))
	return append(out, toTokens(e.Value, s, false, false)...)
}

// containerTokens picks inline or multiline rendering: inline outside any
// nesting context, for empty containers, and for small containers when the
// policy allows it.
func containerTokens(c container, s settings) []token.Token {
	if s.indent < 0 || c.count == 0 || (s.inlineSmallContainers && c.count < 2) {
		return inlineTokens(c, s)
	}
	return multilineTokens(c, s)
}

func inlineTokens(c container, s settings) []token.Token {
	out := []token.Token{c.start}
	for i := 0; i < c.count; i++ {
		if i > 0 {
			out = append(out, tok(token.COMMA, ","), tok(token.SPACE, " "))
		}
		out = append(out, c.item(i, s)...)
	}
	return append(out, c.end)
}

func multilineTokens(c container, s settings) []token.Token {
	out := []token.Token{c.start, tok(token.NL, "\n")}
	child := s.indented()
	for i := 0; i < c.count; i++ {
		out = append(out, indentToken(child.indent))
		out = append(out, c.item(i, child)...)
		out = append(out, tok(token.COMMA, ","), tok(token.NL, "\n"))
	}
	if s.indent > 0 {
		out = append(out, indentToken(s.indent))
	}
	return append(out, c.end)
}

func indentToken(depth int) token.Token {
	src := ""
	for i := 0; i < depth; i++ {
		src += indentUnit
	}
	return tok(token.INDENT, src)
}

// topLevelMapTokens renders the braceless root form: one entry per line, no
// commas, no brackets. Only legal at the document root.
func topLevelMapTokens(m Map, s settings) []token.Token {
	var out []token.Token
	for _, e := range m {
		out = append(out, mapItemTokens(e, s)...)
		out = append(out, tok(token.NL, "\n"))
	}
	return out
}

// toAST renders a native value and runs the parser over the result. Feeding
// synthesized tokens back through the parser guarantees the tree satisfies
// every structural invariant instead of being hand-assembled.
func toAST(val any, s settings, topLevelMap bool) (ast.Document, error) {
	toks := append(toTokens(val, s, false, topLevelMap), tok(token.EOF, ""))
	return parser.FromTokens(toks, parser.DefaultMaxDepth)
}
