package shrink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuneShrinksTowardA(t *testing.T) {
	assert.Empty(t, collect(Rune(), 'a'))
	assert.Equal(t, []rune{'a'}, collect(Rune(), 'b'))
	assert.Equal(t, []rune{'a', 'c', 'd'}, collect(Rune(), 'e'))
}

func TestStringDropThenSimplify(t *testing.T) {
	got := collect(String(), "bc")
	want := []string{
		"c", "b", // drop one character at a time
		"ac",       // simplify 'b' toward 'a'
		"ba", "bb", // simplify 'c' toward 'a'
	}
	assert.Equal(t, want, got)
}

func TestStringEmptyHasNoCandidates(t *testing.T) {
	assert.Empty(t, collect(String(), ""))
}

func TestStringCandidatesNeverGrow(t *testing.T) {
	input := "hello"
	for _, c := range collect(String(), input) {
		require.LessOrEqual(t, len(c), len(input))
	}
}
