package gen

import (
	"strings"

	"github.com/nomagicln/quickprop/pkg/rng"
)

const (
	alphaChars   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	printableLow = 32  // space
	printableHi  = 126 // tilde
)

// AlphaChar generates a single ASCII letter.
func AlphaChar() Gen[rune] {
	return Elements([]rune(alphaChars)...)
}

// PrintableChar generates a single printable ASCII character.
func PrintableChar() Gen[rune] {
	return Map(Choose(printableLow, printableHi), func(v int64) rune { return rune(v) })
}

// AlphaString generates strings of ASCII letters with length uniform in
// [0, size].
func AlphaString() Gen[string] {
	return stringOf(AlphaChar())
}

// AnyString generates strings of printable ASCII characters with length
// uniform in [0, size].
func AnyString() Gen[string] {
	return stringOf(PrintableChar())
}

// Identifier generates non-empty identifiers: a letter followed by up to
// size-1 letters or digits.
func Identifier() Gen[string] {
	return func(size int, seed rng.Seed) (string, rng.Seed) {
		first, next := Elements([]rune(alphaChars)...)(size, seed)
		rest, next := stringOf(Elements([]rune(alphaChars + digitChars)...))(size-1, next)
		return string(first) + rest, next
	}
}

func stringOf(char Gen[rune]) Gen[string] {
	return Map(SliceOf(char), func(rs []rune) string {
		var sb strings.Builder
		for _, r := range rs {
			sb.WriteRune(r)
		}
		return sb.String()
	})
}
