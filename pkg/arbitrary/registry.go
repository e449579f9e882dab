package arbitrary

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"sort"
	"sync"

	"github.com/nomagicln/quickprop/pkg/gen"
	"github.com/nomagicln/quickprop/pkg/rng"
	"github.com/nomagicln/quickprop/pkg/shrink"
)

// Registry is the type-to-arbitrary lookup table. Entries for composite
// types are derived on first lookup and cached; explicit registrations
// always win over derivation.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]Arbitrary
}

// Default is the package-level registry used by prop.ForAll. Callers
// register domain types here, or build their own registry and use
// prop.ForAllIn.
var Default = NewRegistry()

// NewRegistry creates a registry pre-seeded with primitive types:
// all signed and unsigned integer widths, both float widths, string,
// and bool.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[reflect.Type]Arbitrary)}

	Register(r, gen.Int(), shrink.Int())
	Register(r, gen.Int64(), shrink.Int64())
	Register(r, clampedInt[int8](math.MinInt8, math.MaxInt8), intShrinker[int8]())
	Register(r, clampedInt[int16](math.MinInt16, math.MaxInt16), intShrinker[int16]())
	Register(r, clampedInt[int32](math.MinInt32, math.MaxInt32), intShrinker[int32]())
	Register(r, gen.Uint64(), shrink.Uint64())
	Register(r, clampedUint[uint](math.MaxUint64), uintShrinker[uint]())
	Register(r, clampedUint[uint8](math.MaxUint8), uintShrinker[uint8]())
	Register(r, clampedUint[uint16](math.MaxUint16), uintShrinker[uint16]())
	Register(r, clampedUint[uint32](math.MaxUint32), uintShrinker[uint32]())
	Register(r, gen.Float64(), shrink.Float64())
	Register(r, gen.Map(gen.Float64(), func(v float64) float32 { return float32(v) }), shrink.Float32())
	Register(r, gen.AnyString(), shrink.String())
	Register(r, gen.Bool(), shrink.Bool())

	return r
}

func clampedInt[T ~int8 | ~int16 | ~int32](low, high int64) gen.Gen[T] {
	return gen.Map(gen.Int64(), func(v int64) T {
		return T(min(max(v, low), high))
	})
}

func clampedUint[T ~uint | ~uint8 | ~uint16 | ~uint32](high uint64) gen.Gen[T] {
	return gen.Map(gen.Uint64(), func(v uint64) T {
		return T(min(v, high))
	})
}

func intShrinker[T ~int8 | ~int16 | ~int32]() shrink.Shrinker[T] {
	return shrink.Map(shrink.Int64(), func(v T) int64 { return int64(v) }, func(v int64) T { return T(v) })
}

func uintShrinker[T ~uint | ~uint8 | ~uint16 | ~uint32]() shrink.Shrinker[T] {
	return shrink.Map(shrink.Uint64(), func(v T) uint64 { return uint64(v) }, func(v uint64) T { return T(v) })
}

func (r *Registry) put(t reflect.Type, a Arbitrary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[t] = a
}

// Lookup returns the Arbitrary for t, deriving and caching one for
// composite and named types when no explicit registration exists.
// Underivable types yield a *NoArbitraryError.
func (r *Registry) Lookup(t reflect.Type) (Arbitrary, error) {
	r.mu.RLock()
	a, ok := r.entries[t]
	r.mu.RUnlock()
	if ok {
		return a, nil
	}

	a, err := r.derive(t)
	if err != nil {
		return Arbitrary{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent Lookup or Register may have won the race; keep theirs.
	if existing, ok := r.entries[t]; ok {
		return existing, nil
	}
	r.entries[t] = a
	return a, nil
}

// derive builds an Arbitrary for an unregistered type. Records compose
// their field arbitraries slot-wise; slices, arrays, pointers and maps
// compose their element arbitraries; named types with primitive kinds
// adapt the primitive entry via conversion.
func (r *Registry) derive(t reflect.Type) (Arbitrary, error) {
	switch t.Kind() {
	case reflect.Struct:
		return r.deriveStruct(t)
	case reflect.Slice:
		return r.deriveSlice(t)
	case reflect.Array:
		return r.deriveArray(t)
	case reflect.Ptr:
		return r.derivePtr(t), nil
	case reflect.Map:
		return r.deriveMap(t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String, reflect.Bool:
		return r.deriveNamed(t)
	default:
		return Arbitrary{}, &NoArbitraryError{Type: t}
	}
}

// deriveNamed adapts the primitive entry of t's kind for a named type,
// converting values in both directions.
func (r *Registry) deriveNamed(t reflect.Type) (Arbitrary, error) {
	base, ok := kindPrototypes[t.Kind()]
	if !ok {
		return Arbitrary{}, &NoArbitraryError{Type: t}
	}
	inner, err := r.Lookup(base)
	if err != nil {
		return Arbitrary{}, err
	}
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			v, next := inner.Generate(size, seed)
			return v.Convert(t), next
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				for candidate := range inner.Shrink(v.Convert(base)) {
					if !yield(candidate.Convert(t)) {
						return
					}
				}
			}
		},
	}, nil
}

var kindPrototypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
	reflect.Bool:    reflect.TypeFor[bool](),
}

// deriveStruct composes a record generator from the exported fields'
// arbitraries, and a shrinker that reduces one field slot at a time in
// declaration order, holding the others fixed.
func (r *Registry) deriveStruct(t reflect.Type) (Arbitrary, error) {
	type fieldArb struct {
		index int
		arb   Arbitrary
	}
	var fields []fieldArb
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		arb, err := r.Lookup(f.Type)
		if err != nil {
			return Arbitrary{}, err
		}
		fields = append(fields, fieldArb{index: i, arb: arb})
	}
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			out := reflect.New(t).Elem()
			for _, f := range fields {
				var v reflect.Value
				v, seed = f.arb.Generate(size, seed)
				out.Field(f.index).Set(v)
			}
			return out, seed
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				for _, f := range fields {
					for candidate := range f.arb.Shrink(v.Field(f.index)) {
						out := reflect.New(t).Elem()
						out.Set(v)
						out.Field(f.index).Set(candidate)
						if !yield(out) {
							return
						}
					}
				}
			}
		},
	}, nil
}

// deriveSlice draws the length uniformly from [0, size], then each
// element independently. Shrinking drops one element at a time, then
// shrinks one element in place.
func (r *Registry) deriveSlice(t reflect.Type) (Arbitrary, error) {
	elem, err := r.Lookup(t.Elem())
	if err != nil {
		return Arbitrary{}, err
	}
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			if size < 0 {
				size = 0
			}
			n, next := seed.Bounded(uint64(size) + 1)
			out := reflect.MakeSlice(t, int(n), int(n))
			for i := range int(n) {
				var v reflect.Value
				v, next = elem.Generate(size, next)
				out.Index(i).Set(v)
			}
			return out, next
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				n := v.Len()
				for i := range n {
					out := reflect.MakeSlice(t, 0, n-1)
					out = reflect.AppendSlice(out, v.Slice(0, i))
					out = reflect.AppendSlice(out, v.Slice(i+1, n))
					if !yield(out) {
						return
					}
				}
				for i := range n {
					for candidate := range elem.Shrink(v.Index(i)) {
						out := reflect.MakeSlice(t, n, n)
						reflect.Copy(out, v)
						out.Index(i).Set(candidate)
						if !yield(out) {
							return
						}
					}
				}
			}
		},
	}, nil
}

// deriveArray generates every element independently; shrinking reduces
// one element in place (the length is fixed by the type).
func (r *Registry) deriveArray(t reflect.Type) (Arbitrary, error) {
	elem, err := r.Lookup(t.Elem())
	if err != nil {
		return Arbitrary{}, err
	}
	n := t.Len()
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			out := reflect.New(t).Elem()
			for i := range n {
				var v reflect.Value
				v, seed = elem.Generate(size, seed)
				out.Index(i).Set(v)
			}
			return out, seed
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				for i := range n {
					for candidate := range elem.Shrink(v.Index(i)) {
						out := reflect.New(t).Elem()
						out.Set(v)
						out.Index(i).Set(candidate)
						if !yield(out) {
							return
						}
					}
				}
			}
		},
	}, nil
}

// derivePtr generates nil with probability 1/(size+2), otherwise a
// pointer to a pointee generated at half the size. The pointee lookup is
// deferred to generation time so that recursive types (tree nodes and
// the like) can be derived; the halving size makes recursion bottom out.
func (r *Registry) derivePtr(t reflect.Type) Arbitrary {
	pointee := t.Elem()
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			if size < 0 {
				size = 0
			}
			k, next := seed.Bounded(uint64(size) + 2)
			if k == 0 {
				return reflect.Zero(t), next
			}
			elem, err := r.Lookup(pointee)
			if err != nil {
				panic(err)
			}
			v, next := elem.Generate(size/2, next)
			out := reflect.New(pointee)
			out.Elem().Set(v)
			return out, next
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				if v.IsNil() {
					return
				}
				if !yield(reflect.Zero(t)) {
					return
				}
				elem, err := r.Lookup(pointee)
				if err != nil {
					return
				}
				for candidate := range elem.Shrink(v.Elem()) {
					out := reflect.New(pointee)
					out.Elem().Set(candidate)
					if !yield(out) {
						return
					}
				}
			}
		},
	}
}

// deriveMap draws the entry count uniformly from [0, size]; duplicate
// generated keys collapse, so the realized count may be lower. Shrinking
// drops one entry at a time.
func (r *Registry) deriveMap(t reflect.Type) (Arbitrary, error) {
	key, err := r.Lookup(t.Key())
	if err != nil {
		return Arbitrary{}, err
	}
	val, err := r.Lookup(t.Elem())
	if err != nil {
		return Arbitrary{}, err
	}
	return Arbitrary{
		Generate: func(size int, seed rng.Seed) (reflect.Value, rng.Seed) {
			if size < 0 {
				size = 0
			}
			n, next := seed.Bounded(uint64(size) + 1)
			out := reflect.MakeMapWithSize(t, int(n))
			for range int(n) {
				var k, v reflect.Value
				k, next = key.Generate(size, next)
				v, next = val.Generate(size, next)
				out.SetMapIndex(k, v)
			}
			return out, next
		},
		Shrink: func(v reflect.Value) iter.Seq[reflect.Value] {
			return func(yield func(reflect.Value) bool) {
				keys := v.MapKeys()
				// MapKeys order is randomized per run; order by rendered
				// key so replayed runs walk identical candidate sequences.
				sort.Slice(keys, func(i, j int) bool {
					return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
				})
				for _, dropped := range keys {
					out := reflect.MakeMapWithSize(t, v.Len()-1)
					for _, k := range keys {
						if k.Interface() == dropped.Interface() {
							continue
						}
						out.SetMapIndex(k, v.MapIndex(k))
					}
					if !yield(out) {
						return
					}
				}
			}
		},
	}, nil
}
