// Package primitive implements the textual codec for dumbconf's atomic
// values. Dump functions produce the canonical source form; Parse functions
// accept every spelling the language allows.
package primitive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var boolSpellings = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": false, "False": false, "FALSE": false,
}

var nullSpellings = map[string]struct{}{
	"null": {}, "None": {}, "nil": {}, "NULL": {},
}

var bareWordRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// IsBareWord reports whether s can be written as an unquoted map key.
// Boolean and null spellings are excluded: a bare `true` in key position
// would re-parse as a boolean key, not the string "true".
func IsBareWord(s string) bool {
	if !bareWordRe.MatchString(s) {
		return false
	}
	if _, ok := boolSpellings[s]; ok {
		return false
	}
	_, isNull := nullSpellings[s]
	return !isNull
}

// LookupBool returns the boolean value of src if it is a boolean spelling.
func LookupBool(src string) (val, ok bool) {
	val, ok = boolSpellings[src]
	return val, ok
}

// IsNull reports whether src is a null spelling.
func IsNull(src string) bool {
	_, ok := nullSpellings[src]
	return ok
}

// DumpBool returns the canonical source form of a boolean.
func DumpBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// DumpNull returns the canonical source form of null.
func DumpNull() string { return "null" }

// DumpInt returns the canonical source form of an integer.
func DumpInt(v int64) string { return strconv.FormatInt(v, 10) }

// ParseInt decodes an integer literal: decimal, or hex with a 0x prefix.
// Leading zeros do not change the base; "010" is the decimal value ten.
func ParseInt(src string) (int64, error) {
	body, base := src, 10
	neg := strings.HasPrefix(body, "-")
	body = strings.TrimPrefix(body, "-")
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		base = 16
		body = body[2:]
	}
	if neg {
		body = "-" + body
	}
	v, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", src)
	}
	return v, nil
}

// DumpFloat returns the canonical source form of a float. The result always
// contains a '.' or an exponent so it re-parses as a float, not an integer.
func DumpFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseFloat decodes a float literal.
func ParseFloat(src string) (float64, error) {
	v, err := strconv.ParseFloat(src, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q", src)
	}
	return v, nil
}

// DumpString returns the canonical (double-quoted, escaped) source form of a
// string.
func DumpString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ParseString decodes a quoted string literal, including its quotes.
// Both single and double quotes are accepted.
func ParseString(src string) (string, error) {
	if len(src) < 2 {
		return "", fmt.Errorf("invalid string literal %q", src)
	}
	quote := src[0]
	if (quote != '"' && quote != '\'') || src[len(src)-1] != quote {
		return "", fmt.Errorf("invalid string literal %q", src)
	}
	body := src[1 : len(src)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			if r == utf8.RuneError && size == 1 {
				return "", fmt.Errorf("invalid utf-8 sequence in string %q", src)
			}
			b.WriteRune(r)
			i += size
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("truncated escape sequence in %q", src)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'u':
			if i+4 >= len(body) {
				return "", fmt.Errorf("truncated unicode escape in %q", src)
			}
			v, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape in %q", src)
			}
			b.WriteRune(rune(v))
			i += 4
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c in %q", body[i], src)
		}
		i++
	}
	return b.String(), nil
}
