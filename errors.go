package dumbconf

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrLastTopLevelItem is returned when a delete would remove the final entry
// of a braceless top-level map. An empty braceless document cannot be
// written out and re-parsed to the same structure.
var ErrLastTopLevelItem = errors.New(
	"dumbconf: deleting the last entry of a top-level map would produce an invalid document")

// A ParseError describes a syntax error and its position in the source.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dumbconf: parsing error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// A NotIndexableError is returned when a path segment is applied to a
// primitive (non-container) value.
type NotIndexableError struct {
	Path []any
}

func (e *NotIndexableError) Error() string {
	return fmt.Sprintf("dumbconf: value at %v is not indexable", e.Path)
}

// A KeyNotFoundError is returned when a map lookup finds no entry with the
// requested key.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("dumbconf: key %#v not found", e.Key)
}

// An IndexOutOfRangeError is returned when a list is addressed with an index
// that is not an integer or falls outside the list.
type IndexOutOfRangeError struct {
	Index any
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("dumbconf: list index %v out of range (len %d)", e.Index, e.Len)
}

// A NotAMapError is returned when a key replacement is attempted on an item
// whose parent is not a map.
type NotAMapError struct {
	Path []any
}

func (e *NotAMapError) Error() string {
	return fmt.Sprintf("dumbconf: can only replace map keys, value at %v is not in a map", e.Path)
}

// An InvalidKeyTypeError is returned when a replacement key synthesizes to a
// container. Map keys must be primitives.
type InvalidKeyTypeError struct {
	Value any
}

func (e *InvalidKeyTypeError) Error() string {
	return fmt.Sprintf("dumbconf: map keys must be primitives, got %T", e.Value)
}

// A MarshalerError represents an error from calling a MarshalDumbconf method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "dumbconf: error calling MarshalDumbconf for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }
