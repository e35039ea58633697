package render

import (
	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/pkg/tmpl"
)

const reportTemplate = `# Diff report

{{code .LeftName}} → {{code .RightName}}

| | count |
|---|---|
| added | {{.Stats.Added}} |
| removed | {{.Stats.Removed}} |
| modified | {{.Stats.Modified}} |
| unchanged | {{.Stats.Unchanged}} |

{{if not .HasChanges}}No changes.
{{else}}## Changes

{{range .Entries -}}
{{if eq .Kind "added" -}}
- **added** line {{.RightLine}}: {{code .Right}}
{{else if eq .Kind "removed" -}}
- **removed** line {{.LeftLine}}: {{code .Left}}
{{else if eq .Kind "modified" -}}
- **modified** line {{.LeftLine}}: {{code .Left}} → {{code .Right}} ({{pct .Similarity}} similar)
{{end -}}
{{end -}}
{{end}}`

// MarkdownReport builds a markdown change summary for a computed diff.
// The caller renders it (glamour for terminals, raw for files).
func MarkdownReport(res diff.Result, leftName, rightName string) (string, error) {
	data := struct {
		LeftName   string
		RightName  string
		Stats      diff.Stats
		Entries    []diff.Entry
		HasChanges bool
	}{
		LeftName:   leftName,
		RightName:  rightName,
		Stats:      res.Stats,
		Entries:    res.Entries,
		HasChanges: res.Stats.Added+res.Stats.Removed+res.Stats.Modified > 0,
	}

	return tmpl.Render(reportTemplate, data)
}
