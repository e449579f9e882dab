package check

import (
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Status is the terminal state of a check run.
type Status int

const (
	// Success means MaxTest tests passed.
	Success Status = iota
	// Falsifiable means a counterexample was found (and shrunk).
	Falsifiable
	// Exhausted means the discard budget was spent before MaxTest
	// tests passed.
	Exhausted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Falsifiable:
		return "falsifiable"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Result is the immutable outcome of one check run. It is created once
// by Run and consumed by the reporter (or asserted on directly).
type Result struct {
	// Status tags the terminal state.
	Status Status

	// TestsRun counts tests evaluated, including the falsifying one.
	TestsRun int

	// Shrinks counts adopted shrink substitutions.
	Shrinks int

	// Discards counts precondition rejections across the run.
	Discards int

	// Seed is the seed the run started from; replaying it reproduces
	// the run exactly.
	Seed rng.Seed

	// Original holds the failing arguments before shrinking.
	Original []any

	// Args holds the failing arguments after shrinking (equal to
	// Original when no shrink candidate still failed).
	Args []any

	// Err is the error or recovered panic from the final failing
	// evaluation, if the property produced one.
	Err error
}

// Passed reports whether the run ended in Success.
func (r Result) Passed() bool {
	return r.Status == Success
}
