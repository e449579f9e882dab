// Package rng provides a pure, seed-threaded pseudo-random source.
//
// Unlike math/rand there is no mutable generator object: a Seed is a
// value, and every draw returns both the result and the advanced Seed.
// Two runs started from the same Seed and fed the same sequence of
// requests produce bit-identical values, which is what makes replaying
// a reported failure exact.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Seed identifies a position in a deterministic pseudo-random stream.
// It is a SplitMix64 state/increment pair; the zero value is usable but
// every fresh run should start from New or a parsed replay seed.
type Seed struct {
	State uint64
	Gamma uint64
}

// InvalidRangeError reports an empty or inverted range passed to Range.
// It indicates programmer error and is never produced by a valid
// generator composition.
type InvalidRangeError struct {
	Low  int64
	High int64
}

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d]: low must not exceed high", e.Low, e.High)
}

// New creates a Seed from system entropy.
func New() Seed {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("rng: entropy source unavailable: %v", err))
	}
	return Seed{
		State: binary.LittleEndian.Uint64(buf[:8]),
		Gamma: binary.LittleEndian.Uint64(buf[8:]) | 1,
	}
}

// FromInt64 creates a deterministic Seed from a single integer.
// Useful for fixed seeds in tests.
func FromInt64(n int64) Seed {
	state := mix(uint64(n))
	gamma := mix(state) | 1
	return Seed{State: state, Gamma: gamma}
}

// Next draws the next 64 random bits and returns the advanced Seed.
// The receiver is unchanged; callers must thread the returned Seed.
// An even Gamma, including the zero value's, is treated as Gamma|1 so
// that every Seed produces a progressing stream.
func (s Seed) Next() (uint64, Seed) {
	gamma := s.Gamma | 1
	next := Seed{State: s.State + gamma, Gamma: gamma}
	return mix(next.State), next
}

// Bounded draws a uniform value in [0, n) and returns the advanced Seed.
// n must be positive.
func (s Seed) Bounded(n uint64) (uint64, Seed) {
	if n == 0 {
		panic(&InvalidRangeError{Low: 0, High: -1})
	}
	v, next := s.Next()
	hi, _ := bits.Mul64(v, n)
	return hi, next
}

// Range draws a uniform value in [low, high] (inclusive) and returns the
// advanced Seed. An empty or inverted range yields an InvalidRangeError.
func Range(s Seed, low, high int64) (int64, Seed, error) {
	if low > high {
		return 0, s, &InvalidRangeError{Low: low, High: high}
	}
	span := uint64(high) - uint64(low) + 1
	if span == 0 {
		// Full int64 range: every 64-bit draw is in range.
		v, next := s.Next()
		return int64(v), next, nil
	}
	v, next := s.Bounded(span)
	return low + int64(v), next, nil
}

// Split derives an independent stream from the current position.
// The original Seed advances by one draw; the returned stream does not
// overlap it for any practical sequence length.
func (s Seed) Split() (Seed, Seed) {
	v, next := s.Next()
	return Seed{State: mix(v), Gamma: mix(v^next.Gamma) | 1}, next
}

// String renders the Seed in the replay representation accepted by Parse.
func (s Seed) String() string {
	return fmt.Sprintf("%016x:%016x", s.State, s.Gamma)
}

// Parse reads a Seed previously rendered by String.
func Parse(repr string) (Seed, error) {
	statePart, gammaPart, ok := strings.Cut(repr, ":")
	if !ok {
		return Seed{}, fmt.Errorf("malformed seed %q: expected <state>:<gamma>", repr)
	}
	state, err := strconv.ParseUint(statePart, 16, 64)
	if err != nil {
		return Seed{}, fmt.Errorf("malformed seed state %q: %w", statePart, err)
	}
	gamma, err := strconv.ParseUint(gammaPart, 16, 64)
	if err != nil {
		return Seed{}, fmt.Errorf("malformed seed gamma %q: %w", gammaPart, err)
	}
	return Seed{State: state, Gamma: gamma | 1}, nil
}

// mix is the SplitMix64 output permutation.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
