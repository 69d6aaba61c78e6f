// Package lexer implements the lossless tokenizer for dumbconf source.
// Unlike a conventional lexer it never discards input: whitespace, newlines
// and comments are emitted as trivia tokens so the token stream concatenates
// back to the original text.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/dumbconf/go-dumbconf/internal/primitive"
	"github.com/dumbconf/go-dumbconf/internal/token"
)

// Error is a tokenization failure at a source position.
type Error struct {
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Tokenize scans data into a token sequence ending with an EOF token.
// The Src fields of the returned tokens concatenate to data exactly.
func Tokenize(data []byte) ([]token.Token, error) {
	l := &lexer{input: string(data), line: 1, column: 1, atLineStart: true}
	return l.run()
}

type lexer struct {
	input       string
	pos         int
	line        int
	column      int
	atLineStart bool
}

func (l *lexer) run() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Line: l.line, Column: l.column}
}

// emit builds a token from the scanned source text and advances the
// line/column bookkeeping past it.
func (l *lexer) emit(tp token.Type, src string) token.Token {
	tok := token.Token{Type: tp, Src: src, Line: l.line, Column: l.column}
	for _, c := range src {
		if c == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += len(src)
	l.atLineStart = tp == token.NL
	return tok
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) next() (token.Token, error) {
	if l.pos >= len(l.input) {
		return l.emit(token.EOF, ""), nil
	}
	switch c := l.input[l.pos]; c {
	case ' ', '\t':
		end := l.pos
		for end < len(l.input) && (l.input[end] == ' ' || l.input[end] == '\t') {
			end++
		}
		tp := token.SPACE
		if l.atLineStart {
			tp = token.INDENT
		}
		return l.emit(tp, l.input[l.pos:end]), nil
	case '\n':
		return l.emit(token.NL, "\n"), nil
	case '\r':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\n' {
			return l.emit(token.NL, "\r\n"), nil
		}
		return token.Token{}, l.errorf("standalone carriage return")
	case '#':
		end := l.pos
		for end < len(l.input) && l.input[end] != '\n' {
			if l.input[end] == '\r' && end+1 < len(l.input) && l.input[end+1] == '\n' {
				break
			}
			end++
		}
		return l.emit(token.COMMENT, l.input[l.pos:end]), nil
	case '{':
		return l.emit(token.LBRACE, "{"), nil
	case '}':
		return l.emit(token.RBRACE, "}"), nil
	case '[':
		return l.emit(token.LBRACK, "["), nil
	case ']':
		return l.emit(token.RBRACK, "]"), nil
	case ',':
		return l.emit(token.COMMA, ","), nil
	case ':':
		return l.emit(token.COLON, ":"), nil
	case '"', '\'':
		return l.scanString(c)
	default:
		if isWordChar(c) {
			return l.scanWord()
		}
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == utf8.RuneError {
			return token.Token{}, l.errorf("invalid utf-8")
		}
		return token.Token{}, l.errorf("unexpected character %q", r)
	}
}

func (l *lexer) scanString(quote byte) (token.Token, error) {
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case quote:
			return l.emit(token.STRING, l.input[l.pos:i+1]), nil
		case '\\':
			i += 2
		case '\n':
			return token.Token{}, l.errorf("unterminated string")
		default:
			i++
		}
	}
	return token.Token{}, l.errorf("unterminated string")
}

// scanWord reads a maximal run of literal characters and classifies it as a
// number, boolean, null, or bare word.
func (l *lexer) scanWord() (token.Token, error) {
	end := l.pos
	for end < len(l.input) && isWordChar(l.input[end]) {
		end++
	}
	src := l.input[l.pos:end]
	if tp, ok := classifyNumber(src); ok {
		return l.emit(tp, src), nil
	}
	if _, ok := primitive.LookupBool(src); ok {
		return l.emit(token.BOOL, src), nil
	}
	if primitive.IsNull(src) {
		return l.emit(token.NULL, src), nil
	}
	if primitive.IsBareWord(src) {
		return l.emit(token.BAREWORD, src), nil
	}
	return token.Token{}, l.errorf("invalid literal %q", src)
}

func isWordChar(c byte) bool {
	return c == '_' || c == '-' || c == '+' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func parseIntegerPart(s string, i int) (newIndex int, ok bool) {
	start := i
	i = consumeDigits(s, i)
	if i == start {
		return i, false // No digits found.
	}
	return i, true
}

func parseFractionalPart(s string, i int) (newIndex int, ok, isFloat bool) {
	if i >= len(s) || s[i] != '.' {
		return i, true, false
	}
	i++ // Consume '.'.
	start := i
	i = consumeDigits(s, i)
	if i == start {
		return i, false, true // No digits after '.'.
	}
	return i, true, true
}

func parseExponentPart(s string, i int) (newIndex int, ok, isFloat bool) {
	if i >= len(s) || (s[i] != 'e' && s[i] != 'E') {
		return i, true, false
	}
	i++ // Consume 'e' or 'E'.
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	i = consumeDigits(s, i)
	if i == start {
		return i, false, true // No digits in exponent.
	}
	return i, true, true
}

// classifyNumber reports whether s is a well-formed number literal and
// whether it is an integer or a float.
func classifyNumber(s string) (token.Type, bool) {
	if len(s) == 0 {
		return token.ILLEGAL, false
	}
	i := 0
	if s[i] == '-' {
		if len(s) == 1 {
			return token.ILLEGAL, false
		}
		i++
	}
	if i >= len(s) || (!isDigit(s[i]) && s[i] != '.') {
		return token.ILLEGAL, false
	}

	// Hex integers.
	if s[i] == '0' && i+1 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X') {
		for j := i + 2; j < len(s); j++ {
			if !isHexDigit(s[j]) {
				return token.ILLEGAL, false
			}
		}
		if len(s) == i+2 {
			return token.ILLEGAL, false
		}
		return token.INT, true
	}

	isFloat := false
	var ok bool
	i, ok = parseIntegerPart(s, i)
	if !ok {
		return token.ILLEGAL, false
	}
	var partFloat bool
	i, ok, partFloat = parseFractionalPart(s, i)
	if !ok {
		return token.ILLEGAL, false
	}
	isFloat = isFloat || partFloat
	i, ok, partFloat = parseExponentPart(s, i)
	if !ok {
		return token.ILLEGAL, false
	}
	isFloat = isFloat || partFloat

	// Must consume the whole string.
	if i != len(s) {
		return token.ILLEGAL, false
	}
	if isFloat {
		return token.FLOAT, true
	}
	return token.INT, true
}
