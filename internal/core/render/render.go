// Package render turns engine output into styled terminal text. It
// consumes diff entries, inline segments, and JSON diff trees; it never
// computes anything itself.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/jsondiff"
	"github.com/sheetdiff/sheetdiff/internal/core/styles"
)

// Options configures terminal rendering.
type Options struct {
	// Width is the terminal width used by the side-by-side layout.
	// Zero means 80 columns.
	Width int
	// Inline selects the inline refinement strategy for modified lines.
	Inline diff.InlineMode
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

// Unified writes a unified view: one column, removals above additions,
// modified lines shown as a remove/add pair with inline highlighting.
func Unified(w io.Writer, res diff.Result, opts Options) {
	for _, e := range res.Entries {
		switch e.Kind {
		case diff.KindUnchanged:
			fmt.Fprintf(w, "%s %s %s\n", lineNo(e.LeftLine), styles.Muted.Render(" "), e.Left)
		case diff.KindRemoved:
			fmt.Fprintf(w, "%s %s %s\n", lineNo(e.LeftLine), styles.Removed.Render("-"), styles.Removed.Render(e.Left))
		case diff.KindAdded:
			fmt.Fprintf(w, "%s %s %s\n", lineNo(e.RightLine), styles.Added.Render("+"), styles.Added.Render(e.Right))
		case diff.KindModified:
			oldSegs, newSegs := diff.Inline(e.Left, e.Right, opts.Inline)
			fmt.Fprintf(w, "%s %s %s\n", lineNo(e.LeftLine), styles.Removed.Render("-"), inlineLine(oldSegs, styles.Removed, styles.RemovedInline))
			fmt.Fprintf(w, "%s %s %s\n", lineNo(e.RightLine), styles.Added.Render("+"), inlineLine(newSegs, styles.Added, styles.AddedInline))
		}
	}
}

// SideBySide writes a two-column view with the original document on the
// left and the modified document on the right.
func SideBySide(w io.Writer, res diff.Result, opts Options) {
	// Two gutters of 6 and a 3-char divider.
	col := (opts.width() - 15) / 2
	if col < 10 {
		col = 10
	}

	for _, e := range res.Entries {
		var left, right string
		switch e.Kind {
		case diff.KindUnchanged:
			left = pad(e.Left, col)
			right = pad(e.Right, col)
		case diff.KindRemoved:
			left = styles.Removed.Render(pad(e.Left, col))
			right = pad("", col)
		case diff.KindAdded:
			left = pad("", col)
			right = styles.Added.Render(pad(e.Right, col))
		case diff.KindModified:
			oldSegs, newSegs := diff.Inline(e.Left, e.Right, opts.Inline)
			left = padStyled(inlineLine(oldSegs, styles.Removed, styles.RemovedInline), e.Left, col)
			right = padStyled(inlineLine(newSegs, styles.Added, styles.AddedInline), e.Right, col)
		}

		divider := styles.Muted.Render(" │ ")
		fmt.Fprintf(w, "%s %s%s%s %s\n", lineNo(e.LeftLine), left, divider, lineNo(e.RightLine), right)
	}
}

// StatsLine formats diff summary statistics as a single styled line.
func StatsLine(stats diff.Stats) string {
	parts := []string{
		styles.Added.Render(fmt.Sprintf("+%d added", stats.Added)),
		styles.Removed.Render(fmt.Sprintf("-%d removed", stats.Removed)),
		styles.Modified.Render(fmt.Sprintf("~%d modified", stats.Modified)),
		styles.Muted.Render(fmt.Sprintf("%d unchanged", stats.Unchanged)),
	}
	return strings.Join(parts, "  ")
}

// Tree writes an indented JSON diff tree. Unchanged leaves are shown
// muted so structure stays readable; containers print their path only.
func Tree(w io.Writer, root *jsondiff.Node) {
	if root == nil {
		return
	}
	writeTreeNode(w, root, 0)
}

func writeTreeNode(w io.Writer, n *jsondiff.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Path
	if label == "" {
		label = "(root)"
	}

	marker, style := treeMarker(n)

	if n.Children != nil {
		fmt.Fprintf(w, "%s%s %s\n", indent, marker, style.Render(label))
		for _, c := range n.Children {
			writeTreeNode(w, c, depth+1)
		}
		return
	}

	switch n.Kind {
	case diff.KindModified:
		fmt.Fprintf(w, "%s%s %s: %s → %s\n", indent, marker, style.Render(label),
			styles.Removed.Render(formatValue(n.Old)), styles.Added.Render(formatValue(n.New)))
	case diff.KindAdded:
		fmt.Fprintf(w, "%s%s %s: %s\n", indent, marker, style.Render(label), style.Render(formatValue(n.New)))
	case diff.KindRemoved:
		fmt.Fprintf(w, "%s%s %s: %s\n", indent, marker, style.Render(label), style.Render(formatValue(n.Old)))
	default:
		fmt.Fprintf(w, "%s%s %s: %s\n", indent, marker, style.Render(label), style.Render(formatValue(n.New)))
	}
}

func treeMarker(n *jsondiff.Node) (string, lipgloss.Style) {
	switch n.Kind {
	case diff.KindAdded:
		return styles.Added.Render("+"), styles.Added
	case diff.KindRemoved:
		return styles.Removed.Render("-"), styles.Removed
	case diff.KindModified:
		return styles.Modified.Render("~"), styles.Modified
	default:
		return " ", styles.Muted
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// inlineLine renders one side of a modified pair, styling changed
// segments with the emphasis style.
func inlineLine(segs []diff.Segment, base, emphasis lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Changed {
			b.WriteString(emphasis.Render(s.Text))
		} else {
			b.WriteString(base.Render(s.Text))
		}
	}
	return b.String()
}

// pad truncates or right-pads plain text to width columns.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// padStyled pads a styled string using its plain form to measure width,
// falling back to the plain text when it is too long for the column.
func padStyled(styled, plain string, width int) string {
	r := []rune(plain)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return styled + strings.Repeat(" ", width-len(r))
}

func lineNo(n int) string {
	if n == 0 {
		return styles.LineNumber.Render("")
	}
	return styles.LineNumber.Render(fmt.Sprintf("%d", n))
}
