package prop

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/quickprop/pkg/rng"
)

func TestForAllBoolCondition(t *testing.T) {
	p := ForAll(func(x int) bool { return x == x })
	require.Equal(t, 1, p.Arity())

	args, _ := p.Generate(10, rng.FromInt64(1))
	v := p.Evaluate(args)
	assert.Equal(t, Pass, v.Outcome)
	assert.NoError(t, v.Err)
}

func TestForAllOutcomeCondition(t *testing.T) {
	p := ForAll(func(x int) Outcome {
		if x%2 == 0 {
			return Discard
		}
		return Pass
	})

	even := p.Evaluate([]reflect.Value{reflect.ValueOf(2)})
	odd := p.Evaluate([]reflect.Value{reflect.ValueOf(3)})
	assert.Equal(t, Discard, even.Outcome)
	assert.Equal(t, Pass, odd.Outcome)
}

func TestForAllErrorCondition(t *testing.T) {
	boom := errors.New("boom")
	p := ForAll(func(x int) error {
		if x < 0 {
			return boom
		}
		return nil
	})

	ok := p.Evaluate([]reflect.Value{reflect.ValueOf(1)})
	bad := p.Evaluate([]reflect.Value{reflect.ValueOf(-1)})
	assert.Equal(t, Pass, ok.Outcome)
	assert.Equal(t, Fail, bad.Outcome)
	assert.ErrorIs(t, bad.Err, boom)
}

func TestForAllBoolErrorCondition(t *testing.T) {
	failure := errors.New("lookup failed")
	p := ForAll(func(x int) (bool, error) {
		if x == 13 {
			return false, failure
		}
		return true, nil
	})

	bad := p.Evaluate([]reflect.Value{reflect.ValueOf(13)})
	assert.Equal(t, Fail, bad.Outcome)
	assert.ErrorIs(t, bad.Err, failure)
}

func TestForAllMultipleParameters(t *testing.T) {
	p := ForAll(func(x int, s string, b bool) bool { return true })
	require.Equal(t, 3, p.Arity())

	args, _ := p.Generate(10, rng.FromInt64(2))
	require.Len(t, args, 3)
	assert.Equal(t, reflect.Int, args[0].Kind())
	assert.Equal(t, reflect.String, args[1].Kind())
	assert.Equal(t, reflect.Bool, args[2].Kind())
}

func TestForAllRejectsNonFunctions(t *testing.T) {
	assert.Panics(t, func() { ForAll(42) })
	assert.Panics(t, func() { ForAll(func() bool { return true }) })
	assert.Panics(t, func() { ForAll(func(x int) {}) })
	assert.Panics(t, func() { ForAll(func(x int) string { return "" }) })
}

func TestForAllRejectsUnknownParameterTypes(t *testing.T) {
	assert.Panics(t, func() { ForAll(func(ch chan int) bool { return true }) })
}

func TestWhenDiscardsFilteredInputs(t *testing.T) {
	p := ForAll(func(x, y int) bool { return x+y != x*y }).
		When(func(x, y int) bool { return !(x == 0 && y == 0) })

	rejected := p.Evaluate([]reflect.Value{reflect.ValueOf(0), reflect.ValueOf(0)})
	accepted := p.Evaluate([]reflect.Value{reflect.ValueOf(1), reflect.ValueOf(0)})
	assert.Equal(t, Discard, rejected.Outcome)
	assert.Equal(t, Pass, accepted.Outcome)
}

func TestWhenDoesNotMutateOriginal(t *testing.T) {
	base := ForAll(func(x int) bool { return true })
	filtered := base.When(func(x int) bool { return false })

	unfiltered := base.Evaluate([]reflect.Value{reflect.ValueOf(1)})
	assert.Equal(t, Pass, unfiltered.Outcome)
	assert.Equal(t, Discard, filtered.Evaluate([]reflect.Value{reflect.ValueOf(1)}).Outcome)
}

func TestWhenValidatesSignature(t *testing.T) {
	p := ForAll(func(x int) bool { return true })
	assert.Panics(t, func() { p.When(func(s string) bool { return true }) })
	assert.Panics(t, func() { p.When(func(x, y int) bool { return true }) })
	assert.Panics(t, func() { p.When(func(x int) int { return 0 }) })
}

func TestEvaluateRecoversPanic(t *testing.T) {
	p := ForAll(func(x int) bool {
		panic("implementation exploded")
	})

	v := p.Evaluate([]reflect.Value{reflect.ValueOf(5)})
	require.Equal(t, Fail, v.Outcome)
	require.Error(t, v.Err)
	assert.Contains(t, v.Err.Error(), "implementation exploded")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "pass", Pass.String())
	assert.Equal(t, "fail", Fail.String())
	assert.Equal(t, "discard", Discard.String())
}
