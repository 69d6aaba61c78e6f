// Package ast defines the lossless structural tree for dumbconf documents.
//
// Every node carries the exact source text it was parsed from, either in a
// Src field (primitives) or as trivia token slices (containers and items).
// Unparse reproduces the original input byte-for-byte. Nodes are immutable
// values: edits build new nodes along the edited path and share every
// untouched subtree.
package ast

import (
	"fmt"
	"strings"

	"github.com/dumbconf/go-dumbconf/internal/token"
)

// Node is a value in the tree.
type Node interface {
	node()
}

// String is a quoted string literal.
type String struct {
	Val string
	Src string
}

// Bool is a boolean literal.
type Bool struct {
	Val bool
	Src string
}

// Null is a null literal.
type Null struct {
	Src string
}

// Int is an integer literal.
type Int struct {
	Val int64
	Src string
}

// Float is a float literal.
type Float struct {
	Val float64
	Src string
}

// BareWordKey is an unquoted map key. Its value is the key string.
type BareWordKey struct {
	Val string
	Src string
}

func (String) node()      {}
func (Bool) node()        {}
func (Null) node()        {}
func (Int) node()         {}
func (Float) node()       {}
func (BareWordKey) node() {}
func (Map) node()         {}
func (List) node()        {}

// Item is one entry of a container. Head holds the leading trivia of the
// entry (its line's indentation, blank lines and comment lines above it);
// Tail holds the trailing trivia (comma, trailing comment, newline). Inner
// holds the tokens between key and value and is only set for Map items.
type Item struct {
	Head  []token.Token
	Key   Node // nil for List items
	Inner []token.Token
	Val   Node
	Tail  []token.Token
}

// Map is an ordered mapping. Head holds the opening brace and the trivia on
// its line; Tail holds the trivia before the closing brace and the brace
// itself. Both are empty for the braceless top-level style.
type Map struct {
	Head            []token.Token
	Items           []Item
	Tail            []token.Token
	IsTopLevelStyle bool
	IsMultiline     bool
}

// List is an ordered sequence. Head and Tail hold the brackets and their
// adjacent trivia.
type List struct {
	Head        []token.Token
	Items       []Item
	Tail        []token.Token
	IsMultiline bool
}

// Document is a parsed source: leading trivia, the root value, and the
// trailing trivia through end of input.
type Document struct {
	Head []token.Token
	Val  Node
	Tail []token.Token
}

// IsPrimitive reports whether n is a primitive (non-container) node.
func IsPrimitive(n Node) bool {
	switch n.(type) {
	case String, Bool, Null, Int, Float, BareWordKey:
		return true
	}
	return false
}

// PrimitiveVal returns the decoded native value of a primitive node.
func PrimitiveVal(n Node) (any, bool) {
	switch n := n.(type) {
	case String:
		return n.Val, true
	case BareWordKey:
		return n.Val, true
	case Bool:
		return n.Val, true
	case Null:
		return nil, true
	case Int:
		return n.Val, true
	case Float:
		return n.Val, true
	}
	return nil, false
}

// Items returns the item sequence of a container node.
func Items(n Node) ([]Item, bool) {
	switch n := n.(type) {
	case Map:
		return n.Items, true
	case List:
		return n.Items, true
	}
	return nil, false
}

// WithItems returns a copy of the container n with its items replaced.
// It panics if n is not a container.
func WithItems(n Node, items []Item) Node {
	switch n := n.(type) {
	case Map:
		n.Items = items
		return n
	case List:
		n.Items = items
		return n
	}
	panic(fmt.Sprintf("dumbconf: not a container node: %T", n))
}

// Multiline reports whether a container renders one item per line.
// It panics if n is not a container.
func Multiline(n Node) bool {
	switch n := n.(type) {
	case Map:
		return n.IsMultiline
	case List:
		return n.IsMultiline
	}
	panic(fmt.Sprintf("dumbconf: not a container node: %T", n))
}

// Unparse flattens a document back to text by concatenating stored source
// fragments.
func Unparse(doc Document) string {
	var b strings.Builder
	writeTokens(&b, doc.Head)
	writeNode(&b, doc.Val)
	writeTokens(&b, doc.Tail)
	return b.String()
}

func writeTokens(b *strings.Builder, toks []token.Token) {
	for _, t := range toks {
		b.WriteString(t.Src)
	}
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case String:
		b.WriteString(n.Src)
	case Bool:
		b.WriteString(n.Src)
	case Null:
		b.WriteString(n.Src)
	case Int:
		b.WriteString(n.Src)
	case Float:
		b.WriteString(n.Src)
	case BareWordKey:
		b.WriteString(n.Src)
	case Map:
		writeTokens(b, n.Head)
		for _, it := range n.Items {
			writeItem(b, it)
		}
		writeTokens(b, n.Tail)
	case List:
		writeTokens(b, n.Head)
		for _, it := range n.Items {
			writeItem(b, it)
		}
		writeTokens(b, n.Tail)
	default:
		panic(fmt.Sprintf("dumbconf: unknown ast node %T", n))
	}
}

func writeItem(b *strings.Builder, it Item) {
	writeTokens(b, it.Head)
	if it.Key != nil {
		writeNode(b, it.Key)
		writeTokens(b, it.Inner)
	}
	writeNode(b, it.Val)
	writeTokens(b, it.Tail)
}
