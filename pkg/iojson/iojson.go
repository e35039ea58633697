// Package iojson holds utilities for reading and writing JSON from a
// command line interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write marshals obj with indentation and prints it to w followed by a
// newline. Marshal failures report the object's type so the bug is
// findable.
func Write(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %T: %w", obj, err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine marshals obj compactly and prints it to w as one line.
// Use this for JSON-lines output where each record stands alone.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", obj, err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// ReadFile decodes a JSON document from path into T.
func ReadFile[T any](path string) (T, error) {
	var out T

	f, err := os.Open(path)
	if err != nil {
		return out, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		return out, fmt.Errorf("decode JSON: %w", err)
	}

	return out, nil
}
