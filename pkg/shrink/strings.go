package shrink

import "iter"

// Rune shrinks a character toward 'a', the simplest letter: the ordering
// is distance from 'a', and the candidates follow the integer halving
// sequence on that distance.
func Rune() Shrinker[rune] {
	return Map(Int64(),
		func(r rune) int64 { return int64(r) - 'a' },
		func(d int64) rune { return rune(d + 'a') },
	)
}

// String shrinks by first dropping one character at a time, then
// simplifying one character in place toward 'a'. Dropped variants are
// strictly shorter; simplified variants keep the length and strictly
// reduce one character's distance from 'a'.
func String() Shrinker[string] {
	runes := Slice(Rune())
	return func(v string) iter.Seq[string] {
		return func(yield func(string) bool) {
			for candidate := range runes([]rune(v)) {
				if !yield(string(candidate)) {
					return
				}
			}
		}
	}
}
