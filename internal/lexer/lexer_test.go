package lexer_test

import (
	"strings"
	"testing"

	"github.com/dumbconf/go-dumbconf/internal/lexer"
	"github.com/dumbconf/go-dumbconf/internal/token"
	"github.com/stretchr/testify/require"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenize(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("a: [1, 2.5]  # hi\n"))
	require.NoError(t, err)
	require.Equal(t, []token.Type{
		token.BAREWORD, token.COLON, token.SPACE, token.LBRACK,
		token.INT, token.COMMA, token.SPACE, token.FLOAT, token.RBRACK,
		token.SPACE, token.COMMENT, token.NL, token.EOF,
	}, types(toks))
}

func TestTokenize_Lossless(t *testing.T) {
	sources := []string{
		"a: 1\nb: 2\n",
		"{key: 'value', other: [True, None]}",
		"# comment only\n",
		"  \t leading blanks",
		"x: 0x2a\ny: -1.5e-3\n",
		"crlf: 1\r\n",
		"",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			toks, err := lexer.Tokenize([]byte(src))
			require.NoError(t, err)

			var b strings.Builder
			for _, tok := range toks {
				b.WriteString(tok.Src)
			}
			require.Equal(t, src, b.String())
		})
	}
}

func TestTokenize_Classification(t *testing.T) {
	tests := []struct {
		src  string
		want token.Type
	}{
		{"42", token.INT},
		{"-7", token.INT},
		{"0x2A", token.INT},
		{"1.5", token.FLOAT},
		{"-1.5e-3", token.FLOAT},
		{"6E5", token.FLOAT},
		{"True", token.BOOL},
		{"FALSE", token.BOOL},
		{"nil", token.NULL},
		{"some_key-1", token.BAREWORD},
		{`"str"`, token.STRING},
		{"'str'", token.STRING},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			toks, err := lexer.Tokenize([]byte(tc.src))
			require.NoError(t, err)
			require.Equal(t, tc.want, toks[0].Type)
			require.Equal(t, tc.src, toks[0].Src)
		})
	}
}

func TestTokenize_IndentVsSpace(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("[\n    1, 2,\n]"))
	require.NoError(t, err)
	require.Equal(t, []token.Type{
		token.LBRACK, token.NL,
		token.INDENT, token.INT, token.COMMA, token.SPACE, token.INT, token.COMMA, token.NL,
		token.RBRACK, token.EOF,
	}, types(toks))
}

func TestTokenize_Positions(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("a: 1\nbb: 2\n"))
	require.NoError(t, err)

	// The INT on the second line sits after "bb: ".
	var second token.Token
	for _, tok := range toks {
		if tok.Type == token.INT && tok.Src == "2" {
			second = tok
		}
	}
	require.Equal(t, 2, second.Line)
	require.Equal(t, 5, second.Column)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated string", `"oops`, "unterminated string"},
		{"string hits a newline", "\"oops\nmore\"", "unterminated string"},
		{"standalone carriage return", "a\rb", "standalone carriage return"},
		{"malformed number", "1.2.3", "invalid literal"},
		{"lone minus", "-", "invalid literal"},
		{"incomplete hex", "0x", "invalid literal"},
		{"unexpected character", "a: @\n", "unexpected character"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lexer.Tokenize([]byte(tc.src))
			var lerr *lexer.Error
			require.ErrorAs(t, err, &lerr)
			require.Contains(t, lerr.Msg, tc.msg)
		})
	}
}
