// Package shrink provides shrinkers: finite, lazily-evaluated sequences
// of strictly smaller candidate values derived from a failing value.
//
// Every shrinker obeys a well-founded ordering (absolute value for
// numbers, length then elementwise order for collections), so repeatedly
// taking any candidate always terminates and never cycles.
package shrink

import (
	"iter"
	"math"
)

// Shrinker produces the candidate sequence for a value of type T.
type Shrinker[T any] func(value T) iter.Seq[T]

// Nothing is the empty shrinker for types with no meaningful ordering.
func Nothing[T any]() Shrinker[T] {
	return func(T) iter.Seq[T] {
		return func(func(T) bool) {}
	}
}

// Int64 shrinks toward zero: 0 first (the most aggressive candidate),
// then repeated halving of the remaining gap. Shrinking 100 yields
// 0, 50, 75, 88, 94, 97, 99: each candidate is closer to the input than
// the last and none reaches it.
func Int64() Shrinker[int64] {
	return func(v int64) iter.Seq[int64] {
		return func(yield func(int64) bool) {
			for gap := v; gap != 0; gap /= 2 {
				if !yield(v - gap) {
					return
				}
			}
		}
	}
}

// Int shrinks toward zero like Int64.
func Int() Shrinker[int] {
	return Map(Int64(), func(v int) int64 { return int64(v) }, func(v int64) int { return int(v) })
}

// Uint64 shrinks toward zero like Int64, within the unsigned domain.
func Uint64() Shrinker[uint64] {
	return func(v uint64) iter.Seq[uint64] {
		return func(yield func(uint64) bool) {
			for gap := v; gap != 0; gap /= 2 {
				if !yield(v - gap) {
					return
				}
			}
		}
	}
}

// Float64 shrinks toward zero: 0 first, then gap halvings. The sequence
// is cut off once halving no longer moves the candidate, keeping it
// finite for every input including denormals.
func Float64() Shrinker[float64] {
	return func(v float64) iter.Seq[float64] {
		return func(yield func(float64) bool) {
			if v == 0 || math.IsNaN(v) {
				return
			}
			if math.IsInf(v, 0) {
				yield(0)
				return
			}
			if !yield(0) {
				return
			}
			for gap, i := v/2, 0; i < 32 && v-gap != v && gap != 0; gap, i = gap/2, i+1 {
				if !yield(v - gap) {
					return
				}
			}
		}
	}
}

// Float32 shrinks toward zero like Float64, with the cutoff computed in
// float32 arithmetic: a candidate that would round back onto the input
// is never yielded.
func Float32() Shrinker[float32] {
	return func(v float32) iter.Seq[float32] {
		return func(yield func(float32) bool) {
			if v == 0 || math.IsNaN(float64(v)) {
				return
			}
			if math.IsInf(float64(v), 0) {
				yield(0)
				return
			}
			if !yield(0) {
				return
			}
			for gap, i := v/2, 0; i < 32 && v-gap != v && gap != 0; gap, i = gap/2, i+1 {
				if !yield(v - gap) {
					return
				}
			}
		}
	}
}

// Bool shrinks true to false.
func Bool() Shrinker[bool] {
	return func(v bool) iter.Seq[bool] {
		return func(yield func(bool) bool) {
			if v {
				yield(false)
			}
		}
	}
}

// Map adapts a Shrinker[U] into a Shrinker[T] via a to/from pair.
func Map[T, U any](s Shrinker[U], to func(T) U, from func(U) T) Shrinker[T] {
	return func(v T) iter.Seq[T] {
		return func(yield func(T) bool) {
			for u := range s(to(v)) {
				if !yield(from(u)) {
					return
				}
			}
		}
	}
}

// Slice shrinks a slice by first dropping one element at a time (every
// removal position), then shrinking one element in place using elem.
// Dropped variants are strictly shorter; in-place variants keep the
// length and strictly reduce one element.
func Slice[T any](elem Shrinker[T]) Shrinker[[]T] {
	return func(v []T) iter.Seq[[]T] {
		return func(yield func([]T) bool) {
			for i := range v {
				dropped := make([]T, 0, len(v)-1)
				dropped = append(dropped, v[:i]...)
				dropped = append(dropped, v[i+1:]...)
				if !yield(dropped) {
					return
				}
			}
			for i := range v {
				for candidate := range elem(v[i]) {
					replaced := make([]T, len(v))
					copy(replaced, v)
					replaced[i] = candidate
					if !yield(replaced) {
						return
					}
				}
			}
		}
	}
}

// Ptr shrinks a non-nil pointer to nil first, then to pointers at
// shrunk pointees.
func Ptr[T any](elem Shrinker[T]) Shrinker[*T] {
	return func(v *T) iter.Seq[*T] {
		return func(yield func(*T) bool) {
			if v == nil {
				return
			}
			if !yield(nil) {
				return
			}
			for candidate := range elem(*v) {
				if !yield(&candidate) {
					return
				}
			}
		}
	}
}
