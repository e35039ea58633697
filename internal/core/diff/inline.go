package diff

import (
	"strings"
	"unicode"
)

// Segment is a run of text within one side of a modified line pair.
// Concatenating the Text of all segments for one side reproduces that
// side's original string exactly.
type Segment struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// InlineMode selects the inline refinement strategy.
type InlineMode string

const (
	// InlineChar trims the common prefix and suffix and marks the
	// middle of each side as changed.
	InlineChar InlineMode = "char"
	// InlineWord aligns whitespace-delimited tokens and marks the
	// tokens unique to each side as changed.
	InlineWord InlineMode = "word"
)

// Inline computes the inline sub-diff of a modified line pair using the
// requested mode. Unknown modes fall back to character mode.
func Inline(old, new string, mode InlineMode) (oldSegs, newSegs []Segment) {
	if mode == InlineWord {
		return InlineTokens(old, new)
	}
	return InlineChars(old, new)
}

// InlineChars computes a character-level sub-diff: the longest common
// prefix and suffix become shared segments and whatever remains in the
// middle of each side becomes a single changed segment.
func InlineChars(old, new string) (oldSegs, newSegs []Segment) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == new {
		seg := Segment{Text: old}
		return []Segment{seg}, []Segment{seg}
	}

	ro := []rune(old)
	rn := []rune(new)

	p := 0
	for p < len(ro) && p < len(rn) && ro[p] == rn[p] {
		p++
	}

	// The suffix may not reach back into the prefix.
	maxSuffix := min(len(ro), len(rn)) - p
	s := 0
	for s < maxSuffix && ro[len(ro)-1-s] == rn[len(rn)-1-s] {
		s++
	}

	build := func(r []rune) []Segment {
		var segs []Segment
		if p > 0 {
			segs = append(segs, Segment{Text: string(r[:p])})
		}
		if mid := r[p : len(r)-s]; len(mid) > 0 {
			segs = append(segs, Segment{Text: string(mid), Changed: true})
		}
		if s > 0 {
			segs = append(segs, Segment{Text: string(r[len(r)-s:])})
		}
		return segs
	}

	return build(ro), build(rn)
}

// InlineTokens computes a token-level sub-diff. Each side is split into
// alternating whitespace and non-whitespace runs, the runs are aligned
// with the LCS aligner, and adjacent segments with the same changed
// flag are coalesced to keep the span count low.
func InlineTokens(old, new string) (oldSegs, newSegs []Segment) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == new {
		seg := Segment{Text: old}
		return []Segment{seg}, []Segment{seg}
	}

	for _, e := range Align(tokenize(old), tokenize(new)) {
		switch e.Kind {
		case KindUnchanged:
			oldSegs = append(oldSegs, Segment{Text: e.Left})
			newSegs = append(newSegs, Segment{Text: e.Right})
		case KindRemoved:
			oldSegs = append(oldSegs, Segment{Text: e.Left, Changed: true})
		case KindAdded:
			newSegs = append(newSegs, Segment{Text: e.Right, Changed: true})
		}
	}

	return coalesce(oldSegs), coalesce(newSegs)
}

// tokenize splits a string into alternating runs of whitespace and
// non-whitespace. Joining the tokens reproduces the input exactly.
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	var inSpace bool

	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != inSpace {
			tokens = append(tokens, b.String())
			b.Reset()
		}
		inSpace = isSpace
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}

	return tokens
}

// coalesce merges adjacent segments sharing the same changed flag.
func coalesce(segs []Segment) []Segment {
	if len(segs) == 0 {
		return nil
	}

	merged := make([]Segment, 0, len(segs))
	current := segs[0]
	for _, seg := range segs[1:] {
		if seg.Changed == current.Changed {
			current.Text += seg.Text
			continue
		}
		merged = append(merged, current)
		current = seg
	}
	merged = append(merged, current)

	return merged
}
