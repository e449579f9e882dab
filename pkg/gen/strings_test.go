package gen

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/nomagicln/quickprop/pkg/rng"
)

func TestAlphaStringOnlyLetters(t *testing.T) {
	seed := rng.FromInt64(61)
	for i := 0; i < 300; i++ {
		var v string
		v, seed = AlphaString()(20, seed)
		require.LessOrEqual(t, len(v), 20)
		for _, r := range v {
			require.True(t, unicode.IsLetter(r), "non-letter %q in %q", r, v)
		}
	}
}

func TestAnyStringPrintable(t *testing.T) {
	seed := rng.FromInt64(67)
	for i := 0; i < 300; i++ {
		var v string
		v, seed = AnyString()(15, seed)
		for _, r := range v {
			require.GreaterOrEqual(t, r, rune(printableLow))
			require.LessOrEqual(t, r, rune(printableHi))
		}
	}
}

func TestIdentifierShape(t *testing.T) {
	seed := rng.FromInt64(71)
	for i := 0; i < 300; i++ {
		var v string
		v, seed = Identifier()(10, seed)
		require.NotEmpty(t, v)
		require.True(t, unicode.IsLetter(rune(v[0])), "identifier %q starts with %q", v, v[0])
		for _, r := range v {
			require.True(t, strings.ContainsRune(alphaChars+digitChars, r), "bad rune %q in %q", r, v)
		}
	}
}
