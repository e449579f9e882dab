package gen

import (
	"math"

	"github.com/nomagicln/quickprop/pkg/rng"
)

// Numeric generators are center-biased rather than uniform: most samples
// cluster near zero and the tails thin out toward ±size. The shape is a
// Gaussian approximation (Irwin-Hall sum of twelve uniform draws) with a
// standard deviation of size/5, clamped to [-size, size]. The clamp keeps
// the documented bound; the narrow sigma keeps values near the top of the
// range rare until size grows well past them.

const sigmaDivisor = 5

// standardNormal draws an approximately standard-normal float using the
// Irwin-Hall construction: the sum of twelve uniforms on [0, 1) has mean
// 6 and variance 1.
func standardNormal(seed rng.Seed) (float64, rng.Seed) {
	sum := 0.0
	for range 12 {
		var v uint64
		v, seed = seed.Next()
		sum += float64(v>>11) / (1 << 53)
	}
	return sum - 6, seed
}

func sizedInt64(size int, seed rng.Seed) (int64, rng.Seed) {
	if size <= 0 {
		return 0, seed
	}
	z, next := standardNormal(seed)
	v := int64(math.Round(z * float64(size) / sigmaDivisor))
	bound := int64(size)
	if v > bound {
		v = bound
	}
	if v < -bound {
		v = -bound
	}
	return v, next
}

// Int64 generates center-biased integers in [-size, size].
func Int64() Gen[int64] {
	return sizedInt64
}

// Int generates center-biased integers in [-size, size].
func Int() Gen[int] {
	return Map(Int64(), func(v int64) int { return int(v) })
}

// Uint64 generates center-biased non-negative integers in [0, size].
func Uint64() Gen[uint64] {
	return Map(Int64(), func(v int64) uint64 {
		if v < 0 {
			return uint64(-v)
		}
		return uint64(v)
	})
}

// Float64 generates center-biased floats in [-size, size].
func Float64() Gen[float64] {
	return func(size int, seed rng.Seed) (float64, rng.Seed) {
		if size <= 0 {
			return 0, seed
		}
		z, next := standardNormal(seed)
		v := z * float64(size) / sigmaDivisor
		bound := float64(size)
		if v > bound {
			v = bound
		}
		if v < -bound {
			v = -bound
		}
		return v, next
	}
}
