package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
)

func entriesFor(t *testing.T, left, right string) []diff.Entry {
	t.Helper()
	return diff.Compute(left, right, diff.Options{}).Entries
}

func TestGroupEntries(t *testing.T) {
	t.Run("unchanged entries close groups", func(t *testing.T) {
		entries := []diff.Entry{
			{Kind: diff.KindAdded},
			{Kind: diff.KindAdded},
			{Kind: diff.KindUnchanged},
			{Kind: diff.KindAdded},
		}

		groups := GroupEntries(entries)

		require.Len(t, groups, 2)
		assert.Equal(t, []int{0, 1}, groups[0].Members)
		assert.Equal(t, []int{3}, groups[1].Members)
	})

	t.Run("kind change starts a new group", func(t *testing.T) {
		entries := []diff.Entry{
			{Kind: diff.KindRemoved},
			{Kind: diff.KindModified},
			{Kind: diff.KindModified},
			{Kind: diff.KindAdded},
		}

		groups := GroupEntries(entries)

		require.Len(t, groups, 3)
		assert.Equal(t, diff.KindRemoved, groups[0].Kind)
		assert.Equal(t, diff.KindModified, groups[1].Kind)
		assert.Equal(t, diff.KindAdded, groups[2].Kind)
	})

	t.Run("groups partition all diff-relevant entries", func(t *testing.T) {
		entries := entriesFor(t, "a\nb\nc", "a\nx\nc\nd")
		groups := GroupEntries(entries)

		seen := map[int]bool{}
		for _, g := range groups {
			for _, idx := range g.Members {
				assert.False(t, seen[idx], "index %d in two groups", idx)
				seen[idx] = true
				assert.Equal(t, g.Kind, entries[idx].Kind)
			}
		}
		for i, e := range entries {
			assert.Equal(t, e.Kind != diff.KindUnchanged, seen[i])
		}
	})

	t.Run("ids are ordinal", func(t *testing.T) {
		groups := GroupEntries(entriesFor(t, "a\nb", "a\nc\nd"))
		for i, g := range groups {
			assert.Equal(t, i, g.ID)
		}
	})
}

func TestDecisions_Toggle(t *testing.T) {
	d := Decisions{}

	d.Toggle(0, DecisionKeep)
	assert.Equal(t, DecisionKeep, d[0])

	// A different decision replaces the current one.
	d.Toggle(0, DecisionDiscard)
	assert.Equal(t, DecisionDiscard, d[0])

	// The same decision twice clears it.
	d.Toggle(0, DecisionDiscard)
	_, ok := d[0]
	assert.False(t, ok)
}

func TestReconcile_Defaults(t *testing.T) {
	t.Run("modifications keep the new side", func(t *testing.T) {
		entries := entriesFor(t, "color: red;", "color: blue;")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{})

		assert.Equal(t, []string{"color: blue;"}, out)
	})

	t.Run("additions are kept", func(t *testing.T) {
		entries := entriesFor(t, "a", "a\nb\nc")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{})

		assert.Equal(t, []string{"a", "b", "c"}, out)
	})

	t.Run("removals are accepted", func(t *testing.T) {
		entries := entriesFor(t, "a\nzz\nc", "a\nc")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{})

		assert.Equal(t, []string{"a", "c"}, out)
	})
}

func TestReconcile_Decisions(t *testing.T) {
	t.Run("restore a removal", func(t *testing.T) {
		entries := entriesFor(t, "a\nzz\nc", "a\nc")
		groups := GroupEntries(entries)
		require.Len(t, groups, 1)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionRestore})

		assert.Equal(t, []string{"a", "zz", "c"}, out)
	})

	t.Run("discard an addition", func(t *testing.T) {
		entries := entriesFor(t, "a", "a\nb")
		groups := GroupEntries(entries)
		require.Len(t, groups, 1)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionDiscard})

		assert.Equal(t, []string{"a"}, out)
	})

	t.Run("keep the original side of a modification", func(t *testing.T) {
		entries := entriesFor(t, "color: red;", "color: blue;")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionOriginal})

		assert.Equal(t, []string{"color: red;"}, out)
	})

	t.Run("keep both sides of a modification", func(t *testing.T) {
		entries := entriesFor(t, "color: red;", "color: blue;")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionBoth})

		assert.Equal(t, []string{"color: red;", "color: blue;"}, out)
	})
}

// The alias decisions mean different things per group kind; that
// behavior is load-bearing for saved decision files.
func TestReconcile_KindConditionalAliases(t *testing.T) {
	t.Run("original restores a removal", func(t *testing.T) {
		entries := entriesFor(t, "a\nzz", "a")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionOriginal})

		assert.Equal(t, []string{"a", "zz"}, out)
	})

	t.Run("both restores a removal", func(t *testing.T) {
		entries := entriesFor(t, "a\nzz", "a")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionBoth})

		assert.Equal(t, []string{"a", "zz"}, out)
	})

	t.Run("original discards an addition", func(t *testing.T) {
		entries := entriesFor(t, "a", "a\nb")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionOriginal})

		assert.Equal(t, []string{"a"}, out)
	})

	t.Run("modified keeps an addition", func(t *testing.T) {
		entries := entriesFor(t, "a", "a\nb")
		groups := GroupEntries(entries)

		out := Reconcile(entries, groups, Decisions{groups[0].ID: DecisionModified})

		assert.Equal(t, []string{"a", "b"}, out)
	})
}

func TestOutput_JoinsWithNewlines(t *testing.T) {
	entries := entriesFor(t, "a\nb", "a\nb")
	out := Output(entries, GroupEntries(entries), Decisions{})
	assert.Equal(t, "a\nb", out)
}

func TestValidDecisions(t *testing.T) {
	assert.Equal(t, []Decision{DecisionKeep, DecisionDiscard}, ValidDecisions(diff.KindAdded))
	assert.Equal(t, []Decision{DecisionRestore, DecisionAccept}, ValidDecisions(diff.KindRemoved))
	assert.Equal(t, []Decision{DecisionOriginal, DecisionModified, DecisionBoth}, ValidDecisions(diff.KindModified))
	assert.Nil(t, ValidDecisions(diff.KindUnchanged))
}
