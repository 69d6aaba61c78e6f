package dumbconf

import "bytes"

// Marshaler is the interface implemented by types that can marshal
// themselves into valid dumbconf.
type Marshaler interface {
	MarshalDumbconf() ([]byte, error)
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// dumbconf description of themselves. The input is a valid dumbconf
// rendering of the value being decoded.
type Unmarshaler interface {
	UnmarshalDumbconf([]byte) error
}

// Marshal returns the dumbconf encoding of v.
//
// By default the output is indented with the root map in the braceless
// top-level style; see the Option values for the formatting knobs.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the dumbconf-encoded data and stores the result in the
// value pointed to by v. Maps decode into the order-preserving Map type
// when v is a *any, and into Go maps, structs (honoring `dumbconf` field
// tags) and slices otherwise.
func Unmarshal(data []byte, v any, opts ...Option) error {
	d := NewDecoder(bytes.NewReader(data), opts...)
	return d.Decode(v)
}
