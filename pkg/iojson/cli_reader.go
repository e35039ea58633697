package iojson

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ReadInput reads a document from path, or from stdin when path is "-".
// Reading stdin from an interactive terminal is rejected so a forgotten
// pipe fails fast instead of hanging.
func ReadInput(path string) ([]byte, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); pipe a document or pass a file path")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
