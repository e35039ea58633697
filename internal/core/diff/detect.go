package diff

// DetectModifications rewrites the raw alignment script so that similar
// removed/added line pairs become modified entries. Only a run of
// removed entries immediately followed by a run of added entries is
// considered for pairing; isolated runs pass through unchanged in kind.
func DetectModifications(entries []Entry, threshold float64) []Entry {
	out := make([]Entry, 0, len(entries))

	for i := 0; i < len(entries); {
		if entries[i].Kind != KindRemoved {
			out = append(out, entries[i])
			i++
			continue
		}

		// Collect the removed block and any added block that follows.
		start := i
		for i < len(entries) && entries[i].Kind == KindRemoved {
			i++
		}
		removed := entries[start:i]

		start = i
		for i < len(entries) && entries[i].Kind == KindAdded {
			i++
		}
		added := entries[start:i]

		if len(added) == 0 {
			out = append(out, removed...)
			continue
		}

		out = append(out, pairBlocks(removed, added, threshold)...)
	}

	return out
}

// pairBlocks matches removed lines against added lines greedily: the
// globally best remaining pair is taken repeatedly until nothing
// similar is left or one side runs out. This is deliberately not an
// optimal assignment; ties go to the first pair found scanning the
// similarity matrix in row-major order.
func pairBlocks(removed, added []Entry, threshold float64) []Entry {
	sims := make([][]float64, len(removed))
	for i, r := range removed {
		sims[i] = make([]float64, len(added))
		for j, a := range added {
			if ok, ratio := AreSimilar(r.Left, a.Right, threshold); ok {
				sims[i][j] = ratio
			}
		}
	}

	matchedRemoved := make([]int, len(removed))
	matchedAdded := make([]int, len(added))
	for i := range matchedRemoved {
		matchedRemoved[i] = -1
	}
	for j := range matchedAdded {
		matchedAdded[j] = -1
	}

	for {
		best, bi, bj := 0.0, -1, -1
		for i := range removed {
			if matchedRemoved[i] >= 0 {
				continue
			}
			for j := range added {
				if matchedAdded[j] >= 0 {
					continue
				}
				if sims[i][j] > best {
					best, bi, bj = sims[i][j], i, j
				}
			}
		}
		if bi < 0 {
			break
		}
		matchedRemoved[bi] = bj
		matchedAdded[bj] = bi
	}

	// Unmatched removed first, then matched pairs ordered by the
	// removed side's original position, then unmatched added.
	out := make([]Entry, 0, len(removed)+len(added))
	for i, r := range removed {
		if matchedRemoved[i] < 0 {
			out = append(out, r)
		}
	}
	for i, r := range removed {
		j := matchedRemoved[i]
		if j < 0 {
			continue
		}
		out = append(out, Entry{
			Kind:       KindModified,
			LeftLine:   r.LeftLine,
			RightLine:  added[j].RightLine,
			Left:       r.Left,
			Right:      added[j].Right,
			Similarity: sims[i][j],
		})
	}
	for j, a := range added {
		if matchedAdded[j] < 0 {
			out = append(out, a)
		}
	}

	return out
}
