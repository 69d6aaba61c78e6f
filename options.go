package dumbconf

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf/internal/parser"
)

// options holds the resolved configuration for encoding and decoding.
type options struct {
	indented              bool
	bareKeys              bool
	topLevelMap           bool
	inlineSmallContainers bool
	maxDepth              int
}

func newOptions() options {
	return options{
		indented:              true,
		bareKeys:              true,
		topLevelMap:           true,
		inlineSmallContainers: true,
		maxDepth:              parser.DefaultMaxDepth,
	}
}

func (o options) settings() settings {
	indent := -1
	if o.indented {
		indent = 0
	}
	return settings{
		indent:                indent,
		bareKeys:              o.bareKeys,
		inlineSmallContainers: o.inlineSmallContainers,
	}
}

// Option configures encoding or decoding.
type Option func(*options) error

// Indented controls multiline rendering of containers. When disabled,
// every container is rendered inline on a single line.
func Indented(on bool) Option {
	return func(o *options) error {
		o.indented = on
		return nil
	}
}

// BareKeys controls whether map keys matching the bare-word grammar are
// written unquoted.
func BareKeys(on bool) Option {
	return func(o *options) error {
		o.bareKeys = on
		return nil
	}
}

// TopLevelMap controls whether a non-empty root map is written in the
// braceless top-level style, one entry per line.
func TopLevelMap(on bool) Option {
	return func(o *options) error {
		o.topLevelMap = on
		return nil
	}
}

// InlineSmallContainers keeps containers with fewer than two items on a
// single line even when indented rendering is on.
func InlineSmallContainers(on bool) Option {
	return func(o *options) error {
		o.inlineSmallContainers = on
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum nesting depth for the
// parser. This helps prevent stack exhaustion on deeply nested documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("dumbconf: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
