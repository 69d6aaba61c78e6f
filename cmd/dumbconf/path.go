package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// parsePath splits a dotted path expression into map keys and list indices.
// Purely numeric segments address list positions; everything else is a
// string map key. Keys containing '.' can be escaped as '\.'.
func parsePath(expr string) []any {
	if expr == "" || expr == "." {
		return nil
	}
	var path []any
	var seg strings.Builder
	flush := func() {
		s := seg.String()
		seg.Reset()
		if i, err := strconv.Atoi(s); err == nil {
			path = append(path, i)
			return
		}
		path = append(path, s)
	}
	for i := 0; i < len(expr); i++ {
		switch {
		case expr[i] == '\\' && i+1 < len(expr) && expr[i+1] == '.':
			seg.WriteByte('.')
			i++
		case expr[i] == '.':
			flush()
		default:
			seg.WriteByte(expr[i])
		}
	}
	flush()
	return path
}

// readInput reads the named file, or stdin when file is "-" or empty.
func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// writeOutput writes the edited document to the source file when overwrite
// is set (and the source was a file), otherwise to stdout.
func writeOutput(file string, overwrite bool, out []byte) error {
	if overwrite {
		if file == "" || file == "-" {
			return fmt.Errorf("-w requires a file argument")
		}
		return os.WriteFile(file, out, 0o644)
	}
	_, err := os.Stdout.Write(out)
	return err
}
