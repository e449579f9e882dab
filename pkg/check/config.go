// Package check runs the generate, evaluate and shrink loop for a property
// and reports the outcome as a Result value.
package check

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nomagicln/quickprop/pkg/rng"
)

// Config holds the immutable settings for one check invocation.
// "Modified" configs are new copies: the With* methods take a value
// receiver and return the adjusted copy, leaving the original untouched.
type Config struct {
	// MaxTest is the number of passing tests required for success.
	MaxTest int

	// StartSize is the generation size for the first test.
	StartSize int

	// EndSize is the generation size for the last test; sizes in
	// between are linearly interpolated.
	EndSize int

	// Replay, when set, seeds the run with a previously reported seed
	// instead of fresh entropy, reproducing it exactly.
	Replay *rng.Seed

	// MaxDiscardRatio bounds precondition retries: the run terminates
	// as Exhausted after MaxDiscardRatio × MaxTest total discards.
	MaxDiscardRatio float64

	// OnEachTest, when set, is invoked with the test index and the
	// generated arguments before each evaluation.
	OnEachTest func(index int, args []any)

	// OnEachShrink, when set, is invoked with each shrink candidate
	// tuple before it is evaluated.
	OnEachShrink func(args []any)
}

// DefaultConfig returns the standard settings: 100 tests, sizes growing
// from 1 to 100, a discard budget of five discards per test, no replay.
func DefaultConfig() Config {
	return Config{
		MaxTest:         100,
		StartSize:       1,
		EndSize:         100,
		MaxDiscardRatio: 5,
	}
}

// WithMaxTest returns a copy with MaxTest overridden.
func (c Config) WithMaxTest(n int) Config {
	c.MaxTest = n
	return c
}

// WithStartSize returns a copy with StartSize overridden.
func (c Config) WithStartSize(n int) Config {
	c.StartSize = n
	return c
}

// WithEndSize returns a copy with EndSize overridden.
func (c Config) WithEndSize(n int) Config {
	c.EndSize = n
	return c
}

// WithReplay returns a copy that replays the given seed.
func (c Config) WithReplay(seed rng.Seed) Config {
	c.Replay = &seed
	return c
}

// WithMaxDiscardRatio returns a copy with MaxDiscardRatio overridden.
func (c Config) WithMaxDiscardRatio(r float64) Config {
	c.MaxDiscardRatio = r
	return c
}

// WithOnEachTest returns a copy with the per-test callback set.
func (c Config) WithOnEachTest(fn func(index int, args []any)) Config {
	c.OnEachTest = fn
	return c
}

// WithOnEachShrink returns a copy with the per-shrink callback set.
func (c Config) WithOnEachShrink(fn func(args []any)) Config {
	c.OnEachShrink = fn
	return c
}

// fileConfig is the YAML shape of a Config; the replay seed uses the
// textual state:gamma representation.
type fileConfig struct {
	MaxTest         int     `yaml:"max_test"`
	StartSize       int     `yaml:"start_size"`
	EndSize         int     `yaml:"end_size"`
	Replay          string  `yaml:"replay,omitempty"`
	MaxDiscardRatio float64 `yaml:"max_discard_ratio"`
}

// LoadConfig reads settings from a YAML file. Absent fields keep their
// defaults; callbacks cannot be configured from a file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	defaults := DefaultConfig()
	fc := fileConfig{
		MaxTest:         defaults.MaxTest,
		StartSize:       defaults.StartSize,
		EndSize:         defaults.EndSize,
		MaxDiscardRatio: defaults.MaxDiscardRatio,
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg := Config{
		MaxTest:         fc.MaxTest,
		StartSize:       fc.StartSize,
		EndSize:         fc.EndSize,
		MaxDiscardRatio: fc.MaxDiscardRatio,
	}
	if fc.Replay != "" {
		seed, err := rng.Parse(fc.Replay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid replay seed in %s: %w", path, err)
		}
		cfg.Replay = &seed
	}
	return cfg, nil
}

// withDefaults fills unset (zero) numeric fields so that a zero Config
// behaves like DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxTest <= 0 {
		c.MaxTest = d.MaxTest
	}
	if c.StartSize <= 0 {
		c.StartSize = d.StartSize
	}
	if c.EndSize <= 0 {
		c.EndSize = d.EndSize
	}
	if c.MaxDiscardRatio <= 0 {
		c.MaxDiscardRatio = d.MaxDiscardRatio
	}
	return c
}
