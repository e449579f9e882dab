// Package gen provides size- and seed-parameterized value generators.
//
// A Gen is a pure function: it consumes part of the randomness stream
// identified by the incoming seed and returns both the generated value
// and the advanced seed. Generators are values; they can be stored,
// combined and reused, and the same (size, seed) pair always yields the
// same value.
package gen

import (
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Gen produces values of type T bounded by size and driven by the seed.
type Gen[T any] func(size int, seed rng.Seed) (T, rng.Seed)

// Const always generates v and consumes no randomness.
func Const[T any](v T) Gen[T] {
	return func(_ int, seed rng.Seed) (T, rng.Seed) {
		return v, seed
	}
}

// Map applies f to every generated value.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return func(size int, seed rng.Seed) (U, rng.Seed) {
		v, next := g(size, seed)
		return f(v), next
	}
}

// Bind generates a value, feeds it to f to obtain a dependent generator,
// and runs that generator on the remaining stream.
func Bind[T, U any](g Gen[T], f func(T) Gen[U]) Gen[U] {
	return func(size int, seed rng.Seed) (U, rng.Seed) {
		v, next := g(size, seed)
		return f(v)(size, next)
	}
}

// Choose generates a uniform integer in [low, high] (inclusive).
// It panics with *rng.InvalidRangeError if low > high.
func Choose(low, high int64) Gen[int64] {
	return func(_ int, seed rng.Seed) (int64, rng.Seed) {
		v, next, err := rng.Range(seed, low, high)
		if err != nil {
			panic(err)
		}
		return v, next
	}
}

// Elements picks uniformly from a fixed non-empty set of values.
// It panics with *rng.InvalidRangeError if the set is empty.
func Elements[T any](values ...T) Gen[T] {
	if len(values) == 0 {
		panic(&rng.InvalidRangeError{Low: 0, High: -1})
	}
	return func(_ int, seed rng.Seed) (T, rng.Seed) {
		i, next := seed.Bounded(uint64(len(values)))
		return values[i], next
	}
}

// OneOf picks uniformly from a fixed non-empty set of generators and
// runs the chosen one. It panics with *rng.InvalidRangeError if the set
// is empty.
func OneOf[T any](gens ...Gen[T]) Gen[T] {
	if len(gens) == 0 {
		panic(&rng.InvalidRangeError{Low: 0, High: -1})
	}
	return func(size int, seed rng.Seed) (T, rng.Seed) {
		i, next := seed.Bounded(uint64(len(gens)))
		return gens[i](size, next)
	}
}

// SliceOf generates slices whose length is uniform in [0, size], with
// each element drawn independently from elem.
func SliceOf[T any](elem Gen[T]) Gen[[]T] {
	return func(size int, seed rng.Seed) ([]T, rng.Seed) {
		if size < 0 {
			size = 0
		}
		n, next := seed.Bounded(uint64(size) + 1)
		out := make([]T, n)
		for i := range out {
			out[i], next = elem(size, next)
		}
		return out, next
	}
}

// PtrOf generates optional values: nil with probability 1/(size+2),
// otherwise a pointer to a value from elem. Larger sizes make nil rarer,
// mirroring how collections grow with size.
func PtrOf[T any](elem Gen[T]) Gen[*T] {
	return func(size int, seed rng.Seed) (*T, rng.Seed) {
		if size < 0 {
			size = 0
		}
		k, next := seed.Bounded(uint64(size) + 2)
		if k == 0 {
			return nil, next
		}
		v, next := elem(size, next)
		return &v, next
	}
}

// Zip2 generates pairs by running a then b on the same stream.
func Zip2[A, B any](a Gen[A], b Gen[B]) Gen[Pair[A, B]] {
	return func(size int, seed rng.Seed) (Pair[A, B], rng.Seed) {
		av, next := a(size, seed)
		bv, next := b(size, next)
		return Pair[A, B]{First: av, Second: bv}, next
	}
}

// Zip3 generates triples by running a, b, then c on the same stream.
func Zip3[A, B, C any](a Gen[A], b Gen[B], c Gen[C]) Gen[Triple[A, B, C]] {
	return func(size int, seed rng.Seed) (Triple[A, B, C], rng.Seed) {
		av, next := a(size, seed)
		bv, next := b(size, next)
		cv, next := c(size, next)
		return Triple[A, B, C]{First: av, Second: bv, Third: cv}, next
	}
}

// Pair is a generated 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a generated 3-tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Bool generates random booleans.
func Bool() Gen[bool] {
	return func(_ int, seed rng.Seed) (bool, rng.Seed) {
		v, next := seed.Next()
		return v&1 == 1, next
	}
}
