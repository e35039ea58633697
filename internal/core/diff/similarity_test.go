package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "abc", b: "abc", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "insert into empty", a: "", b: "abc", want: 3},
		{name: "delete all", a: "abc", b: "", want: 3},
		{name: "single substitution", a: "kitten", b: "sitten", want: 1},
		{name: "classic kitten sitting", a: "kitten", b: "sitting", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("identity is perfect", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("color: red;", "color: red;"))
	})

	t.Run("two empty strings are perfectly similar", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("one empty string is maximally dissimilar", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "x"))
		assert.Equal(t, 0.0, Similarity("x", ""))
	})

	t.Run("ratio reflects edit distance", func(t *testing.T) {
		// distance 1 over max length 4
		assert.InDelta(t, 0.75, Similarity("abcd", "abxd"), 1e-9)
	})
}

func TestAreSimilar(t *testing.T) {
	tests := []struct {
		name      string
		a         string
		b         string
		similar   bool
		minRatio  float64
		exactOnly bool
	}{
		{
			name:    "unrelated single chars",
			a:       "b",
			b:       "x",
			similar: false,
		},
		{
			name:     "same property different value",
			a:        "color: red;",
			b:        "color: blue;",
			similar:  true,
			minRatio: 0.6,
		},
		{
			name:     "whitespace normalized exact match",
			a:        "  color:   red;  ",
			b:        "color: red;",
			similar:  true,
			minRatio: 1.0,
		},
		{
			name:     "closing braces always match",
			a:        "}",
			b:        "  }  ",
			similar:  true,
			minRatio: 1.0,
		},
		{
			name:     "similar selector prefixes",
			a:        ".button-primary {",
			b:        ".button-primary:hover {",
			similar:  true,
			minRatio: 0.65,
		},
		{
			name:     "shared ten char prefix floors at half",
			a:        "background: url(data:image/png;base64,iVBORw0KGgo=)",
			b:        "background-size: cover;",
			similar:  true,
			minRatio: 0.5,
		},
		{
			name:    "disjoint declarations",
			a:       "margin: 0;",
			b:       "z-index: 9999999;",
			similar: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			similar, ratio := AreSimilar(tt.a, tt.b, DefaultThreshold)
			assert.Equal(t, tt.similar, similar)
			if tt.similar {
				assert.GreaterOrEqual(t, ratio, tt.minRatio)
			}
		})
	}
}

func TestAreSimilar_CustomThreshold(t *testing.T) {
	// "abcd" vs "abxd" has ratio 0.75: similar at the default threshold,
	// not at a stricter one.
	similar, _ := AreSimilar("abcd", "abxd", DefaultThreshold)
	assert.True(t, similar)

	similar, _ = AreSimilar("abcd", "abxd", 0.9)
	assert.False(t, similar)
}
