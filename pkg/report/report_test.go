package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/quickprop/pkg/check"
	"github.com/nomagicln/quickprop/pkg/rng"
)

func TestFormatSuccess(t *testing.T) {
	out := Format(check.Result{Status: check.Success, TestsRun: 100})
	assert.Equal(t, "Ok, passed 100 tests.\n", out)
}

func TestFormatFalsifiable(t *testing.T) {
	res := check.Result{
		Status:   check.Falsifiable,
		TestsRun: 42,
		Shrinks:  3,
		Seed:     rng.Seed{State: 1, Gamma: 3},
		Original: []any{250, "xyz"},
		Args:     []any{80, ""},
	}

	out := Format(res)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t,
		"Falsifiable, after 42 tests (3 shrinks) (Seed 0000000000000001:0000000000000003):",
		lines[0])
	assert.Equal(t, "80", lines[1])
	assert.Contains(t, out, "Before shrinking:\n250\nxyz\n")
}

func TestFormatFalsifiableWithoutShrinks(t *testing.T) {
	res := check.Result{
		Status:   check.Falsifiable,
		TestsRun: 1,
		Original: []any{5},
		Args:     []any{5},
	}
	out := Format(res)
	assert.NotContains(t, out, "Before shrinking")
}

func TestFormatFalsifiableWithError(t *testing.T) {
	res := check.Result{
		Status:   check.Falsifiable,
		TestsRun: 7,
		Original: []any{3},
		Args:     []any{3},
		Err:      errors.New("property panicked: boom"),
	}
	assert.Contains(t, Format(res), "Error: property panicked: boom\n")
}

func TestFormatExhausted(t *testing.T) {
	out := Format(check.Result{Status: check.Exhausted, Discards: 500})
	assert.Equal(t, "Arguments exhausted after 500 discards.\n", out)
}

func TestReporterWritesPlain(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)
	require.NoError(t, r.Report(check.Result{Status: check.Success, TestsRun: 10}))
	assert.Equal(t, "Ok, passed 10 tests.\n", sb.String())
}

func TestReporterStyledKeepsContent(t *testing.T) {
	var sb strings.Builder
	r := New(&sb, WithStyles())
	res := check.Result{
		Status:   check.Falsifiable,
		TestsRun: 5,
		Shrinks:  1,
		Original: []any{9},
		Args:     []any{1},
	}
	require.NoError(t, r.Report(res))
	out := sb.String()
	assert.Contains(t, out, "Falsifiable, after 5 tests (1 shrinks)")
	assert.Contains(t, out, "Before shrinking:")
}
