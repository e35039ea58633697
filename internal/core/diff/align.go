package diff

import "slices"

// Align computes the longest-common-subsequence alignment of a and b
// and returns the raw edit script in document order. Shared lines
// become unchanged entries; the remainder becomes removed entries (left
// side only) and added entries (right side only).
//
// Alignment is O(len(a)*len(b)) in both time and memory. Callers
// comparing very large documents must chunk their input first.
func Align(a, b []string) []Entry {
	m, n := len(a), len(b)

	// dp[i][j] = length of the LCS of a[:i] and b[:j].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	// Backtrack from (m,n). Entries come out in reverse document order.
	// On ties the added branch wins, so insertions sort before
	// deletions once the script is reversed back.
	entries := make([]Entry, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			entries = append(entries, Entry{
				Kind:      KindUnchanged,
				LeftLine:  i,
				RightLine: j,
				Left:      a[i-1],
				Right:     b[j-1],
			})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			entries = append(entries, Entry{
				Kind:      KindAdded,
				RightLine: j,
				Right:     b[j-1],
			})
			j--
		default:
			entries = append(entries, Entry{
				Kind:     KindRemoved,
				LeftLine: i,
				Left:     a[i-1],
			})
			i--
		}
	}

	slices.Reverse(entries)
	return entries
}
