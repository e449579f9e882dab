package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/quickprop/internal/testutil"
	"github.com/nomagicln/quickprop/pkg/gen"
	"github.com/nomagicln/quickprop/pkg/rng"
)

func TestInt64StaysWithinSize(t *testing.T) {
	seed := rng.FromInt64(7)
	for _, size := range []int{0, 1, 10, 100, 1000} {
		s := seed
		for i := 0; i < 500; i++ {
			var v int64
			v, s = gen.Int64()(size, s)
			require.LessOrEqual(t, v, int64(size))
			require.GreaterOrEqual(t, v, -int64(size))
		}
	}
}

func TestInt64ZeroSizeIsZero(t *testing.T) {
	v, _ := gen.Int64()(0, rng.FromInt64(1))
	assert.Equal(t, int64(0), v)
}

func TestInt64CenterBias(t *testing.T) {
	h := testutil.HistogramOf(gen.Int64(), 100, 20000, rng.FromInt64(1234))

	// Most mass sits near zero; the extremes are rare.
	assert.Greater(t, h.Share(func(v int64) bool { return v > -20 && v < 20 }), 0.5)
	assert.Less(t, h.Share(func(v int64) bool { return v > 80 || v < -80 }), 0.001)
}

func TestInt64TailsDecrease(t *testing.T) {
	// Per the distribution contract: at size 10 the samples cluster at
	// zero with tail counts strictly decreasing toward the extremes.
	h := testutil.HistogramOf(gen.Int64(), 10, 50000, rng.FromInt64(99))

	at := func(d int64) int { return h[d] + h[-d] }
	require.Greater(t, at(0), at(3))
	require.Greater(t, at(3), at(6))
	require.Greater(t, at(6), at(9))
}

func TestUint64NonNegativeWithinSize(t *testing.T) {
	seed := rng.FromInt64(5)
	for i := 0; i < 500; i++ {
		var v uint64
		v, seed = gen.Uint64()(30, seed)
		require.LessOrEqual(t, v, uint64(30))
	}
}

func TestFloat64StaysWithinSize(t *testing.T) {
	seed := rng.FromInt64(8)
	for i := 0; i < 500; i++ {
		var v float64
		v, seed = gen.Float64()(25, seed)
		require.LessOrEqual(t, v, 25.0)
		require.GreaterOrEqual(t, v, -25.0)
	}
}
