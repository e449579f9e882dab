package check

import (
	"math"
	"reflect"

	"github.com/nomagicln/quickprop/pkg/prop"
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Run executes the generate and evaluate loop for p under cfg and returns
// the terminal Result. The loop is single-threaded and owns its entire
// seed progression, so independent runs may execute concurrently with
// no coordination as long as they use distinct seeds.
func Run(p *prop.Property, cfg Config) Result {
	cfg = cfg.withDefaults()

	start := rng.New()
	if cfg.Replay != nil {
		start = *cfg.Replay
	}
	seed := start

	maxDiscards := int(cfg.MaxDiscardRatio * float64(cfg.MaxTest))
	discards := 0

	for index := 1; index <= cfg.MaxTest; {
		size := sizeFor(cfg, index)
		var args []reflect.Value
		args, seed = p.Generate(size, seed)
		if cfg.OnEachTest != nil {
			cfg.OnEachTest(index, toAny(args))
		}
		verdict := p.Evaluate(args)
		switch verdict.Outcome {
		case prop.Pass:
			index++
		case prop.Discard:
			discards++
			if discards >= maxDiscards {
				return Result{
					Status:   Exhausted,
					TestsRun: index - 1,
					Discards: discards,
					Seed:     start,
				}
			}
		case prop.Fail:
			shrunk, shrinks, err := shrinkLoop(p, args, verdict.Err, cfg)
			return Result{
				Status:   Falsifiable,
				TestsRun: index,
				Shrinks:  shrinks,
				Discards: discards,
				Seed:     start,
				Original: toAny(args),
				Args:     toAny(shrunk),
				Err:      err,
			}
		}
	}

	return Result{
		Status:   Success,
		TestsRun: cfg.MaxTest,
		Discards: discards,
		Seed:     start,
	}
}

// sizeFor linearly interpolates the generation size for a 1-indexed
// test between StartSize and EndSize.
func sizeFor(cfg Config, index int) int {
	span := float64(cfg.EndSize - cfg.StartSize)
	steps := float64(max(cfg.MaxTest-1, 1))
	return cfg.StartSize + int(math.Round(span*float64(index-1)/steps))
}

// shrinkLoop minimizes a failing argument tuple. It works one position
// at a time, left to right: each still-failing candidate is adopted and
// that position's shrink sequence restarts from it; a position is done
// when no remaining candidate fails. The loop stops after a full pass
// over all positions adopts nothing. Every adoption counts as one
// shrink; the error of the final failing evaluation is retained.
func shrinkLoop(p *prop.Property, failing []reflect.Value, failErr error, cfg Config) ([]reflect.Value, int, error) {
	current := make([]reflect.Value, len(failing))
	copy(current, failing)
	shrinks := 0

	for improved := true; improved; {
		improved = false
		for k := range p.Arity() {
			for adopted := true; adopted; {
				adopted = false
				for candidate := range p.Shrink(k, current[k]) {
					trial := make([]reflect.Value, len(current))
					copy(trial, current)
					trial[k] = candidate
					if cfg.OnEachShrink != nil {
						cfg.OnEachShrink(toAny(trial))
					}
					verdict := p.Evaluate(trial)
					if verdict.Outcome != prop.Fail {
						continue
					}
					current[k] = candidate
					failErr = verdict.Err
					shrinks++
					adopted = true
					improved = true
					break
				}
			}
		}
	}

	return current, shrinks, failErr
}

func toAny(args []reflect.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a.Interface()
	}
	return out
}
