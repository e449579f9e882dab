// Package quickprop is a property-based testing engine: it generates
// size-parameterized random inputs for a property function, evaluates
// the property against each, and shrinks the first counterexample to a
// minimal failing case. Every run is reproducible from its seed.
//
// The subpackages carry the machinery: pkg/gen for generators,
// pkg/shrink for shrinkers, pkg/arbitrary for the type registry,
// pkg/prop for properties, pkg/check for the runner, pkg/report for
// rendering and pkg/seedstore for persisted failure replay. This
// package is the convenience surface over them:
//
//	res := quickprop.Check(func(xs []int) bool {
//	    return len(append(xs, 0)) == len(xs)+1
//	})
//	quickprop.Report(os.Stdout, res)
package quickprop

import (
	"io"

	"github.com/nomagicln/quickprop/pkg/check"
	"github.com/nomagicln/quickprop/pkg/prop"
	"github.com/nomagicln/quickprop/pkg/report"
)

// Check runs condition as a property under the default configuration.
// Parameter types must have registered or derivable arbitraries.
func Check(condition any) check.Result {
	return check.Run(prop.ForAll(condition), check.DefaultConfig())
}

// CheckWith runs condition under an explicit configuration.
func CheckWith(cfg check.Config, condition any) check.Result {
	return check.Run(prop.ForAll(condition), cfg)
}

// Report renders a result to w as plain text.
func Report(w io.Writer, res check.Result) error {
	return report.New(w).Report(res)
}
