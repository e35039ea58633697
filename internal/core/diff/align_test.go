package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_BasicScript(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}

	entries := Align(a, b)

	require.Len(t, entries, 4)
	assert.Equal(t, KindUnchanged, entries[0].Kind)
	assert.Equal(t, "a", entries[0].Left)
	assert.Equal(t, KindRemoved, entries[1].Kind)
	assert.Equal(t, "b", entries[1].Left)
	assert.Equal(t, KindAdded, entries[2].Kind)
	assert.Equal(t, "x", entries[2].Right)
	assert.Equal(t, KindUnchanged, entries[3].Kind)
	assert.Equal(t, "c", entries[3].Left)
}

func TestAlign_LineNumbers(t *testing.T) {
	entries := Align([]string{"a", "b"}, []string{"b", "c"})

	for _, e := range entries {
		switch e.Kind {
		case KindUnchanged:
			assert.NotZero(t, e.LeftLine)
			assert.NotZero(t, e.RightLine)
		case KindAdded:
			assert.Zero(t, e.LeftLine)
			assert.NotZero(t, e.RightLine)
		case KindRemoved:
			assert.NotZero(t, e.LeftLine)
			assert.Zero(t, e.RightLine)
		}
	}
}

// Reconstructing each input from its side of the script is the core
// alignment law: unchanged+removed rebuilds the left document,
// unchanged+added rebuilds the right one.
func TestAlign_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
	}{
		{name: "disjoint", a: []string{"x", "y"}, b: []string{"p", "q", "r"}},
		{name: "identical", a: []string{"a", "b"}, b: []string{"a", "b"}},
		{name: "left empty", a: nil, b: []string{"a"}},
		{name: "right empty", a: []string{"a"}, b: nil},
		{name: "both empty", a: nil, b: nil},
		{name: "interleaved", a: []string{"a", "b", "c", "d"}, b: []string{"b", "x", "d", "y"}},
		{name: "repeated lines", a: []string{"}", "}", "a"}, b: []string{"}", "a", "}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Align(tt.a, tt.b)

			var left, right []string
			for _, e := range entries {
				switch e.Kind {
				case KindUnchanged:
					left = append(left, e.Left)
					right = append(right, e.Right)
				case KindRemoved:
					left = append(left, e.Left)
				case KindAdded:
					right = append(right, e.Right)
				}
			}

			assert.Equal(t, tt.a, left)
			assert.Equal(t, tt.b, right)
		})
	}
}

func TestAlign_PrefersAddedOnTies(t *testing.T) {
	// With no common lines both backtrack orders are valid; the
	// tie-break takes the added branch first from the end, which puts
	// removals before additions in document order.
	entries := Align([]string{"old"}, []string{"new"})

	require.Len(t, entries, 2)
	assert.Equal(t, KindRemoved, entries[0].Kind)
	assert.Equal(t, KindAdded, entries[1].Kind)
}
