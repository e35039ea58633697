// Package tmpl provides template rendering utilities for report output.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// codeSpan wraps a line in a single-backtick code span. Backticks inside
// the line would terminate the span early, so they are replaced.
func codeSpan(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	if s == "" {
		s = " "
	}
	return "`" + s + "`"
}

var funcs = template.FuncMap{
	"code": codeSpan,
	"join": strings.Join,
	"pct":  func(ratio float64) string { return fmt.Sprintf("%.0f%%", ratio*100) },
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - code: wrap a line in a markdown code span
//   - join: join a string slice with a separator (e.g., join .Args " ")
//   - pct: format a 0..1 ratio as a whole percentage
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
