package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"azul", "", 4},
		{"", "azul", 4},
		{"azul", "azul", 0},
		{"kitten", "sitting", 3},
		{"smiles", "smile", 1},
		{"latam", "ltam", 1},
		{"gol", "bol", 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Distance(tc.a, tc.b), "Distance(%q, %q)", tc.a, tc.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("azul", ""))
	assert.Equal(t, 0.0, Similarity("", "azul"))
	assert.Equal(t, 1.0, Similarity("smiles", "smiles"))

	// one edit over six runes
	assert.InDelta(t, 1.0-1.0/6.0, Similarity("smiles", "smile"), 1e-9)
}

func TestFindBestMatch(t *testing.T) {
	candidates := []string{"smiles", "latam pass", "tudoazul"}

	got, score, ok := FindBestMatch("smilles", candidates, 0.7)
	assert.True(t, ok)
	assert.Equal(t, "smiles", got)
	assert.Greater(t, score, 0.7)

	_, _, ok = FindBestMatch("qantas", candidates, 0.7)
	assert.False(t, ok)
}

func TestFindBestMatchTieKeepsFirst(t *testing.T) {
	// both candidates are one edit away from the input
	got, _, ok := FindBestMatch("smile", []string{"smiles", "smilee"}, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "smiles", got)
}
