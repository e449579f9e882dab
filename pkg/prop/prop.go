// Package prop turns ordinary functions into checkable properties.
//
// A property is a function of N typed parameters whose return value is
// interpretable as pass/fail (bool), pass/fail/discard (Outcome), or
// pass/fail with a reason (bool, error). Each parameter type must have
// a registered or derivable arbitrary; ForAll wires them up by
// reflection over the function signature.
package prop

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/nomagicln/quickprop/pkg/arbitrary"
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Outcome classifies one evaluation of a property.
type Outcome int

const (
	// Pass means the property held for this input.
	Pass Outcome = iota
	// Fail means the property was falsified by this input.
	Fail
	// Discard means a precondition rejected this input before the
	// property body ran; the test index does not advance.
	Discard
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Discard:
		return "discard"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Verdict is the result of evaluating a property against one argument
// tuple. Err carries the recovered panic or returned error on failure.
type Verdict struct {
	Outcome Outcome
	Err     error
}

// Property binds an N-ary condition function to per-parameter
// arbitraries. Properties are immutable; When returns a derived copy.
type Property struct {
	slots     []arbitrary.Arbitrary
	types     []reflect.Type
	condition reflect.Value
	interpret func(results []reflect.Value) Verdict
	pres      []reflect.Value
}

// ForAll builds a property from condition using the default arbitrary
// registry. It panics if condition is not a function, a parameter type
// has no arbitrary, or the return signature is not one of bool, Outcome,
// error, or (bool, error); all are programmer errors surfaced immediately.
func ForAll(condition any) *Property {
	return ForAllIn(arbitrary.Default, condition)
}

// ForAllIn is ForAll with an explicit registry.
func ForAllIn(reg *arbitrary.Registry, condition any) *Property {
	fn := reflect.ValueOf(condition)
	t := fn.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("prop: condition must be a function, got %T", condition))
	}
	if t.NumIn() == 0 {
		panic("prop: condition must take at least one parameter")
	}
	interpret, err := interpreterFor(t)
	if err != nil {
		panic(err)
	}
	slots := make([]arbitrary.Arbitrary, t.NumIn())
	types := make([]reflect.Type, t.NumIn())
	for i := range t.NumIn() {
		arb, err := reg.Lookup(t.In(i))
		if err != nil {
			panic(err)
		}
		slots[i] = arb
		types[i] = t.In(i)
	}
	return &Property{
		slots:     slots,
		types:     types,
		condition: fn,
		interpret: interpret,
	}
}

// When derives a property with an added precondition. pred must take the
// same parameters as the condition and return bool; argument tuples for
// which it returns false are discarded without running the body.
func (p *Property) When(pred any) *Property {
	fn := reflect.ValueOf(pred)
	t := fn.Type()
	if t.Kind() != reflect.Func || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		panic(fmt.Sprintf("prop: precondition must be a func returning bool, got %T", pred))
	}
	if t.NumIn() != len(p.types) {
		panic(fmt.Sprintf("prop: precondition takes %d parameters, property takes %d", t.NumIn(), len(p.types)))
	}
	for i := range p.types {
		if t.In(i) != p.types[i] {
			panic(fmt.Sprintf("prop: precondition parameter %d is %s, property expects %s", i, t.In(i), p.types[i]))
		}
	}
	derived := *p
	derived.pres = append(append([]reflect.Value(nil), p.pres...), fn)
	return &derived
}

// Arity returns the number of generated parameters.
func (p *Property) Arity() int {
	return len(p.slots)
}

// Generate draws one full argument tuple at the given size.
func (p *Property) Generate(size int, seed rng.Seed) ([]reflect.Value, rng.Seed) {
	args := make([]reflect.Value, len(p.slots))
	for i, slot := range p.slots {
		args[i], seed = slot.Generate(size, seed)
	}
	return args, seed
}

// Shrink returns the candidate sequence for the argument at position i.
func (p *Property) Shrink(i int, v reflect.Value) iter.Seq[reflect.Value] {
	return p.slots[i].Shrink(v)
}

// Evaluate runs the preconditions and, if none rejects, the condition.
// A panic raised by either is recovered and reported as a failing
// verdict carrying the panic value as an error; it never aborts the run.
func (p *Property) Evaluate(args []reflect.Value) (verdict Verdict) {
	defer func() {
		if rec := recover(); rec != nil {
			verdict = Verdict{Outcome: Fail, Err: fmt.Errorf("property panicked: %v", rec)}
		}
	}()
	for _, pre := range p.pres {
		if !pre.Call(args)[0].Bool() {
			return Verdict{Outcome: Discard}
		}
	}
	return p.interpret(p.condition.Call(args))
}

// interpreterFor validates the condition's return signature and returns
// the converter from raw results to a Verdict.
func interpreterFor(t reflect.Type) (func([]reflect.Value) Verdict, error) {
	errType := reflect.TypeFor[error]()
	outcomeType := reflect.TypeFor[Outcome]()
	switch t.NumOut() {
	case 1:
		switch {
		case t.Out(0).Kind() == reflect.Bool:
			return func(results []reflect.Value) Verdict {
				if results[0].Bool() {
					return Verdict{Outcome: Pass}
				}
				return Verdict{Outcome: Fail}
			}, nil
		case t.Out(0) == outcomeType:
			return func(results []reflect.Value) Verdict {
				return Verdict{Outcome: results[0].Interface().(Outcome)}
			}, nil
		case t.Out(0) == errType:
			return func(results []reflect.Value) Verdict {
				if results[0].IsNil() {
					return Verdict{Outcome: Pass}
				}
				return Verdict{Outcome: Fail, Err: results[0].Interface().(error)}
			}, nil
		}
	case 2:
		if t.Out(0).Kind() == reflect.Bool && t.Out(1) == errType {
			return func(results []reflect.Value) Verdict {
				if !results[1].IsNil() {
					return Verdict{Outcome: Fail, Err: results[1].Interface().(error)}
				}
				if results[0].Bool() {
					return Verdict{Outcome: Pass}
				}
				return Verdict{Outcome: Fail}
			}, nil
		}
	}
	return nil, fmt.Errorf("prop: unsupported condition return signature %s: want bool, Outcome, error, or (bool, error)", t)
}
