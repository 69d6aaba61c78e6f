package dumbconf

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/primitive"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// Map is an order-preserving mapping, the native form of a dumbconf map.
// Go's built-in maps do not preserve insertion order, so decoded documents
// use this type instead.
type Map []Entry

// Len returns the number of entries.
func (m Map) Len() int { return len(m) }

// Get returns the value stored under key.
func (m Map) Get(key any) (any, bool) {
	key = normKey(key)
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in document order.
func (m Map) Keys() []any {
	keys := make([]any, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON writes the map as a JSON object, preserving entry order.
// Non-string keys are written in their canonical dumbconf form.
func (m Map) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(keyString(e.Key))
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case bool:
		return primitive.DumpBool(k)
	case nil:
		return primitive.DumpNull()
	case int64:
		return primitive.DumpInt(k)
	case float64:
		return primitive.DumpFloat(k)
	}
	return fmt.Sprintf("%v", key)
}

// normKey converts a caller-supplied key or index to the canonical native
// form used inside the tree: integers widen to int64, floats to float64.
func normKey(key any) any {
	switch k := key.(type) {
	case int:
		return int64(k)
	case int8:
		return int64(k)
	case int16:
		return int64(k)
	case int32:
		return int64(k)
	case uint:
		return int64(k)
	case uint8:
		return int64(k)
	case uint16:
		return int64(k)
	case uint32:
		return int64(k)
	case uint64:
		return int64(k)
	case float32:
		return float64(k)
	}
	return key
}

// project flattens a tree node into native values: primitives yield their
// decoded value, lists yield []any, maps yield an ordered Map.
func project(n ast.Node) any {
	if v, ok := ast.PrimitiveVal(n); ok {
		return v
	}
	switch n := n.(type) {
	case ast.List:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = project(it.Val)
		}
		return out
	case ast.Map:
		out := make(Map, len(n.Items))
		for i, it := range n.Items {
			kv, ok := ast.PrimitiveVal(it.Key)
			if !ok {
				panic(fmt.Sprintf("dumbconf: non-primitive map key node %T", it.Key))
			}
			out[i] = Entry{Key: kv, Value: project(it.Val)}
		}
		return out
	default:
		panic(fmt.Sprintf("dumbconf: unknown ast node %T", n))
	}
}
