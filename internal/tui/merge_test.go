package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/merge"
	"github.com/sheetdiff/sheetdiff/pkg/tuitest"
)

func testModel(t *testing.T) mergeModel {
	t.Helper()

	result := diff.Compute("a\nb\nc", "a\nx\nc\nd", diff.Options{})
	groups := merge.GroupEntries(result.Entries)
	require.NotEmpty(t, groups)

	m := newMergeModel(MergeOptions{
		OldName: "old.css",
		NewName: "new.css",
		Entries: result.Entries,
		Groups:  groups,
		Inline:  diff.InlineChar,
	})

	sized, _ := m.Update(tuitest.WindowSize(80, 24))
	return sized.(mergeModel)
}

func TestMergeModel_View(t *testing.T) {
	m := testModel(t)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "merge: old.css → new.css")
	assert.Contains(t, view, "group 1")
}

func TestMergeModel_Navigation(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, 0, m.cursor)

	next, _ := m.Update(tuitest.KeyDown())
	m = next.(mergeModel)
	assert.Equal(t, min(1, len(m.opts.Groups)-1), m.cursor)

	prev, _ := m.Update(tuitest.KeyUp())
	m = prev.(mergeModel)
	assert.Equal(t, 0, m.cursor)

	// cursor never goes below zero
	prev, _ = m.Update(tuitest.KeyUp())
	m = prev.(mergeModel)
	assert.Equal(t, 0, m.cursor)
}

func TestMergeModel_ToggleDecision(t *testing.T) {
	m := testModel(t)

	g := m.opts.Groups[0]
	first := merge.ValidDecisions(g.Kind)[0]

	next, _ := m.Update(tuitest.KeyPress('1'))
	m = next.(mergeModel)
	assert.Equal(t, first, m.decisions[g.ID])

	// same key again clears the decision
	next, _ = m.Update(tuitest.KeyPress('1'))
	m = next.(mergeModel)
	_, ok := m.decisions[g.ID]
	assert.False(t, ok)
}

func TestMergeModel_AcceptAndCancel(t *testing.T) {
	m := testModel(t)

	accepted, cmd := m.Update(tuitest.KeyPress('w'))
	assert.True(t, accepted.(mergeModel).accepted)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	cancelled, cmd := m.Update(tuitest.KeyPress('q'))
	assert.False(t, cancelled.(mergeModel).accepted)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMergeModel_Preview(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tuitest.KeyPress('p'))
	m = next.(mergeModel)
	assert.True(t, m.preview)

	content := tuitest.StripANSI(m.content())
	assert.Contains(t, content, "preview")
}
