package dumbconf

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/dumbconf/go-dumbconf/internal/ast"
	"github.com/dumbconf/go-dumbconf/internal/parser"
)

// Encoder writes dumbconf values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the dumbconf encoding of v to the stream.
func (e *Encoder) Encode(v any) error {
	o := newOptions()
	for _, opt := range e.opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	native, err := nativeValue(v)
	if err != nil {
		return err
	}
	doc, err := toAST(native, o.settings(), o.topLevelMap)
	if err != nil {
		return wrapParseError(err)
	}
	_, err = io.WriteString(e.w, ast.Unparse(doc))
	return err
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// nativeValue normalizes an arbitrary Go value to native form: string,
// bool, nil, int64, float64, []any, or the ordered Map type.
func nativeValue(v any) (any, error) {
	return reflectNative(reflect.ValueOf(v))
}

func reflectNative(v reflect.Value) (any, error) {
	if !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
		return nil, nil
	}

	// Check for a custom Marshaler on the value and on its address, to
	// handle both value and pointer receivers.
	if v.Type().Implements(marshalerType) && v.CanInterface() {
		return marshalCustom(v, v.Interface().(Marshaler))
	}
	if v.Kind() != reflect.Pointer {
		pv := v
		if !v.CanAddr() {
			pv = reflect.New(v.Type())
			pv.Elem().Set(v)
		} else {
			pv = v.Addr()
		}
		if pv.Type().Implements(marshalerType) && pv.CanInterface() {
			return marshalCustom(pv, pv.Interface().(Marshaler))
		}
	}

	// Follow pointers and interfaces to the concrete value.
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	// The ordered Map type passes through with its entry order kept.
	if v.CanInterface() {
		if m, ok := v.Interface().(Map); ok {
			return nativeFromEntries(m)
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("dumbconf: cannot marshal uint64 %d (overflows int64)", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("dumbconf: unsupported float value %v (no literal form)", f)
		}
		return f, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := reflectNative(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil
	case reflect.Map:
		return nativeFromGoMap(v)
	case reflect.Struct:
		return nativeFromStruct(v)
	default:
		return nil, fmt.Errorf("dumbconf: unsupported type for marshaling: %s", v.Type())
	}
}

func marshalCustom(v reflect.Value, m Marshaler) (any, error) {
	b, err := m.MarshalDumbconf()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	// The marshaler's output is parsed and projected so it joins the
	// normal synthesize-then-reparse pipeline.
	doc, err := parser.Parse(b, parser.DefaultMaxDepth)
	if err != nil {
		return nil, &MarshalerError{
			Type: v.Type(),
			Err:  fmt.Errorf("invalid dumbconf output: %w", wrapParseError(err)),
		}
	}
	return project(doc.Val), nil
}

func nativeFromEntries(m Map) (any, error) {
	out := make(Map, len(m))
	for i, e := range m {
		key, err := nativeKey(reflect.ValueOf(e.Key))
		if err != nil {
			return nil, err
		}
		val, err := nativeValue(e.Value)
		if err != nil {
			return nil, err
		}
		out[i] = Entry{Key: key, Value: val}
	}
	return out, nil
}

// nativeFromGoMap converts a built-in Go map. Built-in maps are unordered,
// so their entries are sorted by canonical key text for deterministic
// output.
func nativeFromGoMap(v reflect.Value) (any, error) {
	if v.IsNil() {
		return nil, nil
	}
	out := make(Map, 0, v.Len())
	for _, k := range v.MapKeys() {
		key, err := nativeKey(k)
		if err != nil {
			return nil, err
		}
		val, err := reflectNative(v.MapIndex(k))
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key, Value: val})
	}
	sort.Slice(out, func(i, j int) bool {
		return keyString(out[i].Key) < keyString(out[j].Key)
	})
	return out, nil
}

func nativeKey(k reflect.Value) (any, error) {
	key, err := reflectNative(k)
	if err != nil {
		return nil, err
	}
	switch key.(type) {
	case string, bool, nil, int64, float64:
		return key, nil
	}
	return nil, fmt.Errorf("dumbconf: map key type must be primitive, got %T", key)
}

func nativeFromStruct(v reflect.Value) (any, error) {
	t := v.Type()
	out := make(Map, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, fieldOpts := parseTag(field.Tag.Get("dumbconf"))
		if name == "-" {
			continue
		}
		if fieldOpts["omitempty"] && isEmptyValue(v.Field(i)) {
			continue
		}
		if name == "" {
			name = field.Name
		}

		val, err := reflectNative(v.Field(i))
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: name, Value: val})
	}
	return out, nil
}

// parseTag splits a dumbconf struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	opts := make(map[string]bool)
	for _, part := range parts[1:] {
		opts[strings.TrimSpace(part)] = true
	}
	return name, opts
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
