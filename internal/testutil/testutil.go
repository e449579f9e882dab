// Package testutil provides shared helpers for quickprop's own tests.
package testutil

import (
	"github.com/nomagicln/quickprop/pkg/gen"
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Collect draws n values from g at the given size, threading the seed
// between draws.
func Collect[T any](g gen.Gen[T], size, n int, seed rng.Seed) []T {
	out := make([]T, n)
	for i := range out {
		out[i], seed = g(size, seed)
	}
	return out
}

// Histogram counts integer samples by value.
type Histogram map[int64]int

// HistogramOf draws n samples from g at the given size and tallies them.
func HistogramOf(g gen.Gen[int64], size, n int, seed rng.Seed) Histogram {
	h := make(Histogram)
	for _, v := range Collect(g, size, n, seed) {
		h[v]++
	}
	return h
}

// Share returns the fraction of tallied samples matching pred.
func (h Histogram) Share(pred func(int64) bool) float64 {
	total, matched := 0, 0
	for v, n := range h {
		total += n
		if pred(v) {
			matched += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
