package dumbconf

import (
	"slices"
	"strings"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/token"
)

// locate resolves one path segment against a container node and returns the
// index of the addressed item. Map keys match by decoded value; list indices
// may be negative to count from the end.
func locate(n ast.Node, key any, path []any) (int, error) {
	switch n := n.(type) {
	case ast.Map:
		for i, it := range n.Items {
			kv, _ := ast.PrimitiveVal(it.Key)
			if kv == key {
				return i, nil
			}
		}
		return 0, &KeyNotFoundError{Key: key}
	case ast.List:
		var i int
		switch k := key.(type) {
		case int:
			i = k
		case int64:
			i = int(k)
		default:
			return 0, &IndexOutOfRangeError{Index: key, Len: len(n.Items)}
		}
		if i < 0 {
			i += len(n.Items)
		}
		if i < 0 || i >= len(n.Items) {
			return 0, &IndexOutOfRangeError{Index: key, Len: len(n.Items)}
		}
		return i, nil
	default:
		return 0, &NotIndexableError{Path: path}
	}
}

// getItem returns the item addressed by path. An empty path addresses the
// document root, returned as a synthetic item with no trivia.
func getItem(root ast.Document, path []any) (ast.Item, error) {
	it := ast.Item{Val: root.Val}
	for n := range path {
		i, err := locate(it.Val, path[n], path[:n+1])
		if err != nil {
			return ast.Item{}, err
		}
		items, _ := ast.Items(it.Val)
		it = items[i]
	}
	return it, nil
}

// itemsFn produces a container's new item sequence given the index of the
// addressed item.
type itemsFn func(c ast.Node, i int) ([]ast.Item, error)

// modifyNode is the path-copying update at the heart of every mutation: it
// rebuilds the containers along path, replacing exactly one child at each
// level, and leaves every other subtree shared with the old tree.
func modifyNode(n ast.Node, path, full []any, fn itemsFn) (ast.Node, error) {
	key, rest := path[0], path[1:]
	prefix := full[:len(full)-len(rest)]
	i, err := locate(n, key, prefix)
	if err != nil {
		return nil, err
	}
	items, _ := ast.Items(n)
	if len(rest) == 0 {
		newItems, err := fn(n, i)
		if err != nil {
			return nil, err
		}
		return ast.WithItems(n, newItems), nil
	}
	newVal, err := modifyNode(items[i].Val, rest, full, fn)
	if err != nil {
		return nil, err
	}
	newItems := slices.Clone(items)
	newItems[i].Val = newVal
	return ast.WithItems(n, newItems), nil
}

// setValue replaces the value at path with a freshly synthesized tree,
// keeping the addressed item's surrounding trivia untouched. An empty path
// replaces the document's root value.
func setValue(root ast.Document, path []any, val ast.Node) (ast.Document, error) {
	if len(path) == 0 {
		root.Val = val
		return root, nil
	}
	newVal, err := modifyNode(root.Val, path, path, func(c ast.Node, i int) ([]ast.Item, error) {
		items, _ := ast.Items(c)
		newItems := slices.Clone(items)
		newItems[i].Val = val
		return newItems, nil
	})
	if err != nil {
		return ast.Document{}, err
	}
	root.Val = newVal
	return root, nil
}

// setKey replaces the key of the item at path. The parent must be a map and
// the new key must synthesize to a primitive.
func setKey(root ast.Document, path []any, keyNode ast.Node, keyVal any) (ast.Document, error) {
	newVal, err := modifyNode(root.Val, path, path, func(c ast.Node, i int) ([]ast.Item, error) {
		if _, ok := c.(ast.Map); !ok {
			return nil, &NotAMapError{Path: path}
		}
		if !ast.IsPrimitive(keyNode) {
			return nil, &InvalidKeyTypeError{Value: keyVal}
		}
		items, _ := ast.Items(c)
		newItems := slices.Clone(items)
		newItems[i].Key = keyNode
		return newItems, nil
	})
	if err != nil {
		return ast.Document{}, err
	}
	root.Val = newVal
	return root, nil
}

// deleteItem removes the item at path and repairs the trivia around the gap
// so the document stays syntactically valid without reformatting any
// untouched line.
func deleteItem(root ast.Document, path []any) (ast.Document, error) {
	newVal, err := modifyNode(root.Val, path, path, func(c ast.Node, i int) ([]ast.Item, error) {
		items, _ := ast.Items(c)
		orig := items[i]
		out := slices.Delete(slices.Clone(items), i, i+1)
		m, isMap := c.(ast.Map)

		switch {
		case isMap && m.IsTopLevelStyle && len(out) == 0:
			return nil, ErrLastTopLevelItem
		case !ast.Multiline(c) && i == len(items)-1 && len(out) > 0:
			// The removed item was last in an inline container: the new
			// last item's separating comma is now superfluous.
			out[len(out)-1].Tail = nil
		case ast.Multiline(c) && i-1 >= 0 && len(orig.Head) == 0 && tailEndsNewline(orig.Tail):
			// The removed item continued the previous item's line; its
			// line break moves to the item before it.
			out[i-1].Tail = orig.Tail
		case ast.Multiline(c) && i+1 < len(items) && len(orig.Head) > 0 && !tailEndsNewline(orig.Tail):
			// The following item shared the removed item's line; it
			// inherits the removed item's indentation.
			out[i].Head = orig.Head
		}
		return out, nil
	})
	if err != nil {
		return ast.Document{}, err
	}
	root.Val = newVal
	return root, nil
}

func tailEndsNewline(tail []token.Token) bool {
	return len(tail) > 0 && strings.HasSuffix(tail[len(tail)-1].Src, "\n")
}
