package diff

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the minimum similarity ratio at which two lines
// are considered the same line, modified.
const DefaultThreshold = 0.4

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	propertyNameRe = regexp.MustCompile(`^([\w-]+)\s*:`)
)

// Distance returns the Levenshtein edit distance between a and b with
// unit costs for insertion, deletion, and substitution.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity returns a ratio in [0,1] derived from the edit distance.
// Two empty strings are perfectly similar; exactly one empty string is
// maximally dissimilar.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1.0 - float64(Distance(a, b))/float64(longest)
}

// AreSimilar reports whether two lines should be treated as the same
// line, modified. Whitespace is normalized before comparing, then
// CSS-aware boosts raise the base edit-distance ratio:
//
//   - same leading property name ("color:" vs "color:") floors at 0.6
//   - similar selector prefixes before "{" floor at 0.65
//   - an identical leading run of up to 10 characters floors at 0.5
//
// Two bare closing braces normalize to the same string and match exactly.
//
// The boosted ratio is returned alongside the decision so callers can
// rank competing pairings.
func AreSimilar(a, b string, threshold float64) (bool, float64) {
	na := normalizeWhitespace(a)
	nb := normalizeWhitespace(b)

	if na == nb {
		return true, 1.0
	}

	ratio := Similarity(na, nb)

	if pa, pb := propertyName(na), propertyName(nb); pa != "" && pa == pb {
		ratio = max(ratio, 0.6)
	}

	if sa, sb, ok := selectorPrefixes(na, nb); ok && Similarity(sa, sb) > 0.7 {
		ratio = max(ratio, 0.65)
	}

	if sharedPrefix(na, nb, 10) {
		ratio = max(ratio, 0.5)
	}

	return ratio >= threshold, ratio
}

func normalizeWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// propertyName extracts the leading CSS property name from a declaration
// line, or "" when the line doesn't look like a declaration.
func propertyName(s string) string {
	m := propertyNameRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// selectorPrefixes returns the trimmed text before the opening brace of
// both lines when both look like selector lines.
func selectorPrefixes(a, b string) (string, string, bool) {
	ia := strings.IndexByte(a, '{')
	ib := strings.IndexByte(b, '{')
	if ia < 0 || ib < 0 {
		return "", "", false
	}
	return strings.TrimSpace(a[:ia]), strings.TrimSpace(b[:ib]), true
}

// sharedPrefix reports whether the first n characters of both strings
// are identical, bounded by the shorter string. Empty strings never
// share a prefix.
func sharedPrefix(a, b string, n int) bool {
	limit := min(n, len(a), len(b))
	if limit == 0 {
		return false
	}
	return a[:limit] == b[:limit]
}
