// Package parser turns a dumbconf token stream into the lossless structural
// tree. Every trivia token is attached to an item's Head or Tail, or to a
// container's or the document's Head or Tail, so that
// ast.Unparse(Parse(s)) == s byte-for-byte for any accepted s.
package parser

import (
	"fmt"
	"strings"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/lexer"
	"github.com/dumbconf/go-dumbconf/internal/primitive"
	"github.com/dumbconf/go-dumbconf/internal/token"
)

// DefaultMaxDepth bounds container nesting to keep recursion in check.
const DefaultMaxDepth = 1000

// Error is a parse failure at a source position.
type Error struct {
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse tokenizes and parses data into a document.
func Parse(data []byte, maxDepth int) (ast.Document, error) {
	toks, err := lexer.Tokenize(data)
	if err != nil {
		if lerr, ok := err.(*lexer.Error); ok {
			return ast.Document{}, &Error{Msg: lerr.Msg, Line: lerr.Line, Column: lerr.Column}
		}
		return ast.Document{}, err
	}
	return FromTokens(toks, maxDepth)
}

// FromTokens parses a token sequence into a document. The sequence must end
// with an EOF token; this is how synthesized token streams are validated
// into real trees instead of being hand-assembled.
func FromTokens(toks []token.Token, maxDepth int) (ast.Document, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{toks: toks, maxDepth: maxDepth}
	return p.parseDocument()
}

type parser struct {
	toks     []token.Token
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.cur()
	return &Error{Msg: fmt.Sprintf(format, args...), Line: t.Line, Column: t.Column}
}

func (p *parser) parseDocument() (ast.Document, error) {
	if p.isTopLevelMap() {
		items, leftover, err := p.parseItems(true, token.EOF)
		if err != nil {
			return ast.Document{}, err
		}
		if err := checkDuplicateKeys(items, p); err != nil {
			return ast.Document{}, err
		}
		m := ast.Map{Items: items, IsTopLevelStyle: true, IsMultiline: true}
		return ast.Document{Val: m, Tail: leftover}, nil
	}

	head := p.collectTrivia()
	if p.cur().Type == token.EOF {
		return ast.Document{}, p.errorf("expected a value, got end of input")
	}
	val, err := p.parseValue()
	if err != nil {
		return ast.Document{}, err
	}
	tail := p.collectTrivia()
	if p.cur().Type != token.EOF {
		return ast.Document{}, p.errorf("unexpected %s token after document value", p.cur().Type)
	}
	return ast.Document{Head: head, Val: val, Tail: tail}, nil
}

// isTopLevelMap looks ahead past leading trivia for a `key:` opening, which
// marks the braceless top-level map form.
func (p *parser) isTopLevelMap() bool {
	i := p.pos
	for i < len(p.toks) && p.toks[i].IsTrivia() {
		i++
	}
	if i >= len(p.toks) || !p.toks[i].IsValue() {
		return false
	}
	i++
	for i < len(p.toks) && p.toks[i].Type == token.SPACE {
		i++
	}
	return i < len(p.toks) && p.toks[i].Type == token.COLON
}

// collectTrivia takes every trivia token from the current position.
func (p *parser) collectTrivia() []token.Token {
	var out []token.Token
	for p.cur().IsTrivia() {
		out = append(out, p.advance())
	}
	return out
}

// collectLine takes trivia through the end of the current line: spaces and
// comments, then a terminating newline if present. An optional single comma
// is taken when withComma is set. Collection also stops before any
// non-trivia token.
func (p *parser) collectLine(withComma bool) []token.Token {
	var out []token.Token
	seenComma := false
	for {
		t := p.cur()
		switch t.Type {
		case token.SPACE, token.COMMENT:
			out = append(out, p.advance())
		case token.COMMA:
			if !withComma || seenComma {
				return out
			}
			seenComma = true
			out = append(out, p.advance())
		case token.NL:
			out = append(out, p.advance())
			return out
		default:
			return out
		}
	}
}

func (p *parser) parseValue() (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.errorf("exceeded maximum nesting depth (%d)", p.maxDepth)
	}

	t := p.cur()
	switch t.Type {
	case token.STRING, token.INT, token.FLOAT, token.BOOL, token.NULL:
		return p.parsePrimitive()
	case token.BAREWORD:
		return nil, p.errorf("bare word %q is only valid as a map key", t.Src)
	case token.LBRACE:
		return p.parseContainer(true)
	case token.LBRACK:
		return p.parseContainer(false)
	case token.EOF:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected %s token", t.Type)
	}
}

// parsePrimitive decodes the current value token via the primitive codec.
func (p *parser) parsePrimitive() (ast.Node, error) {
	t := p.cur()
	switch t.Type {
	case token.STRING:
		v, err := primitive.ParseString(t.Src)
		if err != nil {
			return nil, p.errorf("%s", err)
		}
		p.advance()
		return ast.String{Val: v, Src: t.Src}, nil
	case token.INT:
		v, err := primitive.ParseInt(t.Src)
		if err != nil {
			return nil, p.errorf("%s", err)
		}
		p.advance()
		return ast.Int{Val: v, Src: t.Src}, nil
	case token.FLOAT:
		v, err := primitive.ParseFloat(t.Src)
		if err != nil {
			return nil, p.errorf("%s", err)
		}
		p.advance()
		return ast.Float{Val: v, Src: t.Src}, nil
	case token.BOOL:
		v, ok := primitive.LookupBool(t.Src)
		if !ok {
			return nil, p.errorf("invalid boolean literal %q", t.Src)
		}
		p.advance()
		return ast.Bool{Val: v, Src: t.Src}, nil
	case token.NULL:
		p.advance()
		return ast.Null{Src: t.Src}, nil
	}
	return nil, p.errorf("unexpected %s token", t.Type)
}

func (p *parser) parseKey() (ast.Node, error) {
	t := p.cur()
	if t.Type == token.BAREWORD {
		p.advance()
		return ast.BareWordKey{Val: t.Src, Src: t.Src}, nil
	}
	if t.IsValue() {
		return p.parsePrimitive()
	}
	return nil, p.errorf("invalid %s token for map key", t.Type)
}

// parseContainer parses a braced map (keyed) or a bracketed list.
func (p *parser) parseContainer(keyed bool) (ast.Node, error) {
	end := token.RBRACK
	if keyed {
		end = token.RBRACE
	}
	head := []token.Token{p.advance()}
	// Trivia on the bracket's line, through its newline, stays with the
	// container so deleting the first item cannot detach it.
	head = append(head, p.collectLine(false)...)

	items, leftover, err := p.parseItems(keyed, end)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != end {
		return nil, p.errorf("unterminated container, expected %q got %s", string(end), p.cur().Type)
	}
	tail := append(leftover, p.advance())

	multiline := tokensHaveNL(head) || tokensHaveNL(leftover)
	for _, it := range items {
		multiline = multiline || tokensHaveNL(it.Head) || tokensHaveNL(it.Tail)
	}

	if keyed {
		m := ast.Map{Head: head, Items: items, Tail: tail, IsMultiline: multiline}
		if err := checkDuplicateKeys(items, p); err != nil {
			return nil, err
		}
		return m, nil
	}
	return ast.List{Head: head, Items: items, Tail: tail, IsMultiline: multiline}, nil
}

// parseItems parses container entries until the end token, which is left for
// the caller to consume. Trivia collected after the last item is returned as
// leftover.
func (p *parser) parseItems(keyed bool, end token.Type) ([]ast.Item, []token.Token, error) {
	var items []ast.Item
	for {
		head := p.collectTrivia()
		t := p.cur()
		if t.Type == end {
			return items, head, nil
		}
		if t.Type == token.EOF {
			return nil, nil, p.errorf("unterminated container, expected %q", string(end))
		}
		if len(items) > 0 && !separated(items[len(items)-1].Tail) {
			return nil, nil, p.errorf("expected ',' or newline between items")
		}

		var it ast.Item
		it.Head = head
		if keyed {
			key, err := p.parseKey()
			if err != nil {
				return nil, nil, err
			}
			it.Key = key
			it.Inner = p.collectSpaces()
			if p.cur().Type != token.COLON {
				return nil, nil, p.errorf("expected ':' after map key, got %s", p.cur().Type)
			}
			it.Inner = append(it.Inner, p.advance())
			it.Inner = append(it.Inner, p.collectSpaces()...)
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, nil, err
		}
		it.Val = val
		it.Tail = p.collectLine(true)
		items = append(items, it)
	}
}

func (p *parser) collectSpaces() []token.Token {
	var out []token.Token
	for p.cur().Type == token.SPACE {
		out = append(out, p.advance())
	}
	return out
}

// separated reports whether an item's tail can stand between two items: a
// comma, or a line break for the one-item-per-line styles.
func separated(tail []token.Token) bool {
	for _, t := range tail {
		if t.Type == token.COMMA {
			return true
		}
	}
	return tailEndsNL(tail)
}

func tailEndsNL(tail []token.Token) bool {
	return len(tail) > 0 && strings.HasSuffix(tail[len(tail)-1].Src, "\n")
}

func tokensHaveNL(toks []token.Token) bool {
	for _, t := range toks {
		if t.Type == token.NL {
			return true
		}
	}
	return false
}

func checkDuplicateKeys(items []ast.Item, p *parser) error {
	seen := make(map[any]bool, len(items))
	for _, it := range items {
		v, ok := ast.PrimitiveVal(it.Key)
		if !ok {
			return p.errorf("map key is not a primitive")
		}
		if seen[v] {
			return p.errorf("duplicate map key %v", v)
		}
		seen[v] = true
	}
	return nil
}
