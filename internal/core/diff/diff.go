// Package diff implements the line comparison engine: LCS alignment,
// similarity-based modification detection, and inline refinement of
// modified line pairs.
package diff

import "strings"

// Kind classifies a single diff entry.
type Kind string

const (
	KindUnchanged Kind = "unchanged"
	KindAdded     Kind = "added"
	KindRemoved   Kind = "removed"
	KindModified  Kind = "modified"
)

// Entry is one classified unit of comparison between two documents.
//
// Line numbers are 1-based. A zero line number means the entry has no
// content on that side: added entries carry only the right side,
// removed entries only the left. Unchanged and modified entries carry
// both. Similarity is only meaningful for modified entries.
type Entry struct {
	Kind       Kind
	LeftLine   int
	RightLine  int
	Left       string
	Right      string
	Similarity float64
}

// Stats summarizes a diff. Counts are per entry, not per physical
// source line. TotalOriginal and TotalModified are the line counts of
// the two input documents.
type Stats struct {
	Added         int `json:"added"`
	Removed       int `json:"removed"`
	Modified      int `json:"modified"`
	Unchanged     int `json:"unchanged"`
	TotalOriginal int `json:"total_original"`
	TotalModified int `json:"total_modified"`
}

// Result is a computed diff between two documents.
type Result struct {
	Entries []Entry
	Stats   Stats
}

// Options configures diff computation.
type Options struct {
	// Threshold is the minimum similarity ratio for pairing a removed
	// line with an added line as a modification. Zero means
	// DefaultThreshold.
	Threshold float64
}

func (o Options) threshold() float64 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Compute diffs two documents line by line. The raw LCS alignment is
// refined by pairing similar removed/added lines into modified entries.
func Compute(left, right string, opts Options) Result {
	a := SplitLines(left)
	b := SplitLines(right)

	entries := Align(a, b)
	entries = DetectModifications(entries, opts.threshold())

	stats := Stats{
		TotalOriginal: len(a),
		TotalModified: len(b),
	}
	for _, e := range entries {
		switch e.Kind {
		case KindAdded:
			stats.Added++
		case KindRemoved:
			stats.Removed++
		case KindModified:
			stats.Modified++
		case KindUnchanged:
			stats.Unchanged++
		}
	}

	return Result{Entries: entries, Stats: stats}
}

// SplitLines splits a document into lines. An empty document is an
// empty sequence, not a single empty line. CRLF endings are normalized
// so Windows input diffs cleanly against Unix input.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
