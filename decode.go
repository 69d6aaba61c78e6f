package dumbconf

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/dumbconf/go-dumbconf/internal/parser"
)

// Decoder reads and decodes dumbconf values from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Note: this is a non-streaming implementation. It reads the entire reader
// into memory before parsing.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the dumbconf document from its input and stores it in the
// value pointed to by v. See Unmarshal for the conversion rules.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("dumbconf: Decode(nil reader)")
	}
	o := newOptions()
	for _, opt := range d.opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	doc, err := parser.Parse(data, o.maxDepth)
	if err != nil {
		return wrapParseError(err)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("dumbconf: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{depth: o.maxDepth}
	return ds.assign(project(doc.Val), rv.Elem())
}

type decodeState struct {
	depth int
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

func (ds *decodeState) assign(native any, rv reflect.Value) error { //nolint:gocyclo
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("dumbconf: reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	handled, err := ds.tryCustomUnmarshal(native, rv)
	if err != nil || handled {
		return err
	}

	if native == nil {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		return ds.typeError(native, rv)
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return ds.typeError(native, rv)
		}
		rv.Set(reflect.ValueOf(native))
		return nil
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return ds.assign(native, rv.Elem())
	case reflect.String:
		s, ok := native.(string)
		if !ok {
			return ds.typeError(native, rv)
		}
		rv.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := native.(bool)
		if !ok {
			return ds.typeError(native, rv)
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := native.(int64)
		if !ok {
			return ds.typeError(native, rv)
		}
		if rv.OverflowInt(i) {
			return fmt.Errorf("dumbconf: value %d overflows %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, ok := native.(int64)
		if !ok {
			return ds.typeError(native, rv)
		}
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("dumbconf: value %d overflows %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		switch f := native.(type) {
		case float64:
			rv.SetFloat(f)
			return nil
		case int64:
			rv.SetFloat(float64(f))
			return nil
		}
		return ds.typeError(native, rv)
	case reflect.Slice:
		items, ok := native.([]any)
		if !ok {
			return ds.typeError(native, rv)
		}
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := ds.assign(item, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		items, ok := native.([]any)
		if !ok {
			return ds.typeError(native, rv)
		}
		if len(items) > rv.Len() {
			return fmt.Errorf("dumbconf: array of length %d cannot hold %d items", rv.Len(), len(items))
		}
		for i, item := range items {
			if err := ds.assign(item, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		return ds.assignMap(native, rv)
	case reflect.Struct:
		return ds.assignStruct(native, rv)
	default:
		return ds.typeError(native, rv)
	}
}

// tryCustomUnmarshal hands the value to an Unmarshaler implementation if rv
// (or its address) provides one. The native value is re-encoded so the
// unmarshaler receives well-formed dumbconf.
func (ds *decodeState) tryCustomUnmarshal(native any, rv reflect.Value) (bool, error) {
	target := rv
	if !target.Type().Implements(unmarshalerType) {
		if !rv.CanAddr() || !rv.Addr().Type().Implements(unmarshalerType) {
			return false, nil
		}
		target = rv.Addr()
	}
	if target.Kind() == reflect.Pointer && target.IsNil() {
		return false, nil
	}
	b, err := Marshal(native, Indented(false), TopLevelMap(false))
	if err != nil {
		return true, err
	}
	return true, target.Interface().(Unmarshaler).UnmarshalDumbconf(b)
}

func (ds *decodeState) assignMap(native any, rv reflect.Value) error {
	m, ok := native.(Map)
	if !ok {
		return ds.typeError(native, rv)
	}
	t := rv.Type()
	out := reflect.MakeMapWithSize(t, m.Len())
	for _, e := range m {
		kv := reflect.New(t.Key()).Elem()
		if err := ds.assign(e.Key, kv); err != nil {
			return fmt.Errorf("dumbconf: cannot use %v as %s map key: %w", e.Key, t.Key(), err)
		}
		vv := reflect.New(t.Elem()).Elem()
		if err := ds.assign(e.Value, vv); err != nil {
			return err
		}
		out.SetMapIndex(kv, vv)
	}
	rv.Set(out)
	return nil
}

func (ds *decodeState) assignStruct(native any, rv reflect.Value) error {
	m, ok := native.(Map)
	if !ok {
		return ds.typeError(native, rv)
	}
	t := rv.Type()

	fields := make(map[string]int, t.NumField())
	folded := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _ := parseTag(field.Tag.Get("dumbconf"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		fields[name] = i
		folded[strings.ToLower(name)] = i
	}

	for _, e := range m {
		key, ok := e.Key.(string)
		if !ok {
			// Non-string keys have no struct field to land in.
			continue
		}
		i, ok := fields[key]
		if !ok {
			i, ok = folded[strings.ToLower(key)]
		}
		if !ok {
			continue
		}
		if err := ds.assign(e.Value, rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) typeError(native any, rv reflect.Value) error {
	return fmt.Errorf("dumbconf: cannot unmarshal %s into %s", nativeTypeName(native), rv.Type())
}

func nativeTypeName(native any) string {
	switch native.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("%T", native)
}
