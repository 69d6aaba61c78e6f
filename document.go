package dumbconf

import (
	"errors"
	"io"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/parser"
)

// Document is a parsed dumbconf source held in full fidelity: every byte of
// the input, including comments and whitespace, is preserved and reproduced
// by Bytes. Values are read and edited through Node views obtained from
// Root or At.
//
// Edits rebuild only the nodes along the edited path and leave every other
// subtree shared, so they are cheap and all-or-nothing: a failed edit
// leaves the document untouched. A Document is not safe for concurrent
// mutation; callers must serialize writers themselves.
type Document struct {
	root ast.Document
}

// Parse parses data into an editable Document.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	root, err := parser.Parse(data, o.maxDepth)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return &Document{root: root}, nil
}

// ParseReader reads r to completion and parses it.
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

func wrapParseError(err error) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParseError{Message: perr.Msg, Line: perr.Line, Column: perr.Column}
	}
	return err
}

// Bytes renders the document back to text. For an unedited document the
// result is byte-identical to the parsed input.
func (d *Document) Bytes() []byte {
	return []byte(ast.Unparse(d.root))
}

// String renders the document back to text.
func (d *Document) String() string {
	return ast.Unparse(d.root)
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// Root returns the view addressing the document's root value.
func (d *Document) Root() *Node {
	return &Node{doc: d}
}

// At returns the view addressing the value under the given map keys and
// list indices, starting from the root.
func (d *Document) At(keys ...any) *Node {
	return d.Root().At(keys...)
}

// Value projects the whole document to native values.
func (d *Document) Value() (any, error) {
	return d.Root().Value()
}

// Node is a view of one location in a Document: a shared handle to the
// document plus a path. Views do not own or point into the tree; a write
// through any view is immediately visible through every other view of the
// same document. Obtaining a view performs no validation — the path is
// resolved when the view is read or written.
type Node struct {
	doc  *Document
	path []any
}

// At returns a child view with the path extended by the given map keys and
// list indices.
func (n *Node) At(keys ...any) *Node {
	path := make([]any, 0, len(n.path)+len(keys))
	path = append(path, n.path...)
	for _, k := range keys {
		path = append(path, normKey(k))
	}
	return &Node{doc: n.doc, path: path}
}

// Path returns a copy of the view's path from the document root.
func (n *Node) Path() []any {
	out := make([]any, len(n.path))
	copy(out, n.path)
	return out
}

// Value projects the addressed value to native form: string, bool, nil,
// int64, float64, []any, or the ordered Map type.
func (n *Node) Value() (any, error) {
	it, err := getItem(n.doc.root, n.path)
	if err != nil {
		return nil, err
	}
	return project(it.Val), nil
}

// Set replaces the addressed value with v. The value is synthesized inline
// and re-parsed before splicing; the trivia around the addressed item is
// untouched, so nothing but the value itself changes in the output. At the
// root, Set replaces the entire document value.
func (n *Node) Set(v any) error {
	node, err := n.doc.synthValue(v)
	if err != nil {
		return err
	}
	root, err := setValue(n.doc.root, n.path, node)
	if err != nil {
		return err
	}
	n.doc.root = root
	return nil
}

// SetKey replaces the map key of the addressed item, keeping its value and
// all surrounding trivia. The parent must be a map and the new key must be
// a primitive.
func (n *Node) SetKey(k any) error {
	if len(n.path) == 0 {
		return errors.New("dumbconf: index into a map to replace a key")
	}
	node, err := n.doc.synthValue(k)
	if err != nil {
		return err
	}
	root, err := setKey(n.doc.root, n.path, node, k)
	if err != nil {
		return err
	}
	n.doc.root = root
	return nil
}

// Delete removes the addressed item from its parent container, repairing
// adjacent commas and line breaks so untouched lines keep their exact text.
func (n *Node) Delete() error {
	if len(n.path) == 0 {
		return errors.New("dumbconf: cannot delete the document root")
	}
	root, err := deleteItem(n.doc.root, n.path)
	if err != nil {
		return err
	}
	n.doc.root = root
	return nil
}

// synthValue normalizes v to native form, renders it inline, and re-parses
// the result into a validated tree node.
func (d *Document) synthValue(v any) (ast.Node, error) {
	native, err := nativeValue(v)
	if err != nil {
		return nil, err
	}
	doc, err := toAST(native, defaultSettings, false)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return doc.Val, nil
}
