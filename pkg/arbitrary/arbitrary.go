// Package arbitrary maps concrete Go types to default generator and
// shrinker pairs.
//
// Dispatch is an explicit, inspectable table keyed by reflect.Type,
// not an ambient mechanism. The table is pre-seeded for primitives,
// derives entries for composite types (structs field-wise, slices,
// arrays, pointers, maps) on first lookup, and accepts caller overrides
// for domain types via Register and RegisterUnion.
package arbitrary

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/nomagicln/quickprop/pkg/gen"
	"github.com/nomagicln/quickprop/pkg/rng"
	"github.com/nomagicln/quickprop/pkg/shrink"
)

// Arbitrary bundles the generator and shrinker for one concrete type,
// in the reflect.Value shape the check runner works with.
type Arbitrary struct {
	// Generate produces a value bounded by size, advancing the seed.
	Generate func(size int, seed rng.Seed) (reflect.Value, rng.Seed)

	// Shrink produces the finite candidate sequence for a value.
	Shrink func(v reflect.Value) iter.Seq[reflect.Value]
}

// NoArbitraryError reports a parameter type with no registered or
// derivable generator/shrinker pair.
type NoArbitraryError struct {
	Type reflect.Type
}

// Error implements the error interface.
func (e *NoArbitraryError) Error() string {
	return fmt.Sprintf("no arbitrary registered or derivable for type %s", e.Type)
}

// FromTyped adapts a typed generator/shrinker pair into an Arbitrary.
func FromTyped[T any](g gen.Gen[T], s shrink.Shrinker[T]) Arbitrary {
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			v, next := g(size, seed)
			return reflect.ValueOf(v), next
		},
		Shrink: func(rv reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				for candidate := range s(rv.Interface().(T)) {
					if !yield(reflect.ValueOf(candidate)) {
						return
					}
				}
			}
		},
	}
}

// Register installs a typed override for T in the registry, replacing
// any registered or previously derived entry.
func Register[T any](r *Registry, g gen.Gen[T], s shrink.Shrinker[T]) {
	r.put(reflect.TypeFor[T](), FromTyped(g, s))
}

// RegisterUnion installs an entry for the interface type I built from
// sample variant values: generation first picks a case uniformly, then
// generates that case's payload by its dynamic type; shrinking stays
// within the value's own case. Panics if no variants are given or I is
// not an interface type.
func RegisterUnion[I any](r *Registry, variants ...I) {
	ifaceType := reflect.TypeFor[I]()
	if ifaceType.Kind() != reflect.Interface {
		panic(fmt.Sprintf("arbitrary: RegisterUnion requires an interface type, got %s", ifaceType))
	}
	if len(variants) == 0 {
		panic("arbitrary: RegisterUnion requires at least one variant")
	}
	caseTypes := make([]reflect.Type, len(variants))
	for i, v := range variants {
		caseTypes[i] = reflect.TypeOf(v)
	}
	r.put(ifaceType, Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			i, next := seed.Bounded(uint64(len(caseTypes)))
			payload, err := r.Lookup(caseTypes[i])
			if err != nil {
				panic(err)
			}
			v, next := payload.Generate(size, next)
			boxed := reflect.New(ifaceType).Elem()
			boxed.Set(v)
			return boxed, next
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				inner := v
				if v.Kind() == reflect.Interface {
					inner = v.Elem()
				}
				if !inner.IsValid() {
					return
				}
				payload, err := r.Lookup(inner.Type())
				if err != nil {
					return
				}
				for candidate := range payload.Shrink(inner) {
					boxed := reflect.New(ifaceType).Elem()
					boxed.Set(candidate)
					if !yield(boxed) {
						return
					}
				}
			}
		},
	})
}
