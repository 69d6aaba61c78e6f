package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Src holds the exact source text the token
// was scanned from; concatenating the Src of every token of a document, in
// order, reproduces the input byte-for-byte.
type Token struct {
	Type   Type
	Src    string
	Line   int
	Column int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of file

	// Values
	STRING   Type = "STRING"   // "hello world", 'hello world'
	INT      Type = "INT"      // 12345, -7, 0x2a
	FLOAT    Type = "FLOAT"    // 123.45, 6.02e23
	BOOL     Type = "BOOL"     // true, True, TRUE, false, False, FALSE
	NULL     Type = "NULL"     // null, None, nil, NULL
	BAREWORD Type = "BAREWORD" // an unquoted key

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	COMMA  Type = ","
	COLON  Type = ":"

	// Trivia
	SPACE   Type = "SPACE"   // a run of blanks inside a line
	INDENT  Type = "INDENT"  // a run of blanks at the start of a line
	NL      Type = "NL"      // \n or \r\n
	COMMENT Type = "COMMENT" // # a comment, newline not included
)

// IsTrivia reports whether the token carries no semantic content.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case SPACE, INDENT, NL, COMMENT:
		return true
	}
	return false
}

// IsValue reports whether the token can begin a primitive value or key.
func (t Token) IsValue() bool {
	switch t.Type {
	case STRING, INT, FLOAT, BOOL, NULL, BAREWORD:
		return true
	}
	return false
}
