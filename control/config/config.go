// Package config
// Author: momentics <momentics@gmail.com>
//
// Container tunables: YAML decoding and validation. Kept apart from the
// rest of control so containers can accept a snapshot without linking the
// metrics stack.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/core/concurrency"
	"gopkg.in/yaml.v3"
)

// Config carries the tunables applied to containers at construction.
// Durations are written as Go duration strings ("250ms", "-1ns").
type Config struct {
	// Strategy is "blocking" or "spin".
	Strategy string `yaml:"strategy"`
	// AcquireTimeout bounds plain operations; negative waits forever.
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
	// TryTimeout bounds try-variants.
	TryTimeout time.Duration `yaml:"try_timeout"`
	// SpinBudget is the busy attempts before a spinner yields.
	SpinBudget int `yaml:"spin_budget"`
	// PoolFillSize is how many objects an empty pool constructs at once.
	PoolFillSize int `yaml:"pool_fill_size"`
	// PoolMaxOutstanding bounds borrowed objects; zero is unbounded.
	PoolMaxOutstanding int `yaml:"pool_max_outstanding"`
	// InitialCapacity is the capacity hint for growable containers.
	InitialCapacity int `yaml:"initial_capacity"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Strategy:        concurrency.Blocking.String(),
		AcquireTimeout:  concurrency.Infinite,
		TryTimeout:      concurrency.DefaultTryTimeout,
		SpinBudget:      concurrency.DefaultSpinBudget,
		PoolFillSize:    concurrency.DefaultPoolFillSize,
		InitialCapacity: concurrency.DefaultInitialCapacity,
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := concurrency.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	switch {
	case c.SpinBudget < 0:
		return errors.Wrapf(api.ErrInvalidArgument, "spin_budget must be >= 0, got %d", c.SpinBudget)
	case c.PoolFillSize < 1:
		return errors.Wrapf(api.ErrInvalidArgument, "pool_fill_size must be >= 1, got %d", c.PoolFillSize)
	case c.PoolMaxOutstanding < 0:
		return errors.Wrapf(api.ErrInvalidArgument, "pool_max_outstanding must be >= 0, got %d", c.PoolMaxOutstanding)
	case c.InitialCapacity < 0:
		return errors.Wrapf(api.ErrInvalidArgument, "initial_capacity must be >= 0, got %d", c.InitialCapacity)
	}
	return nil
}

// LockStrategy returns the parsed strategy. Validate must have passed.
func (c Config) LockStrategy() concurrency.Strategy {
	s, _ := concurrency.ParseStrategy(c.Strategy)
	return s
}
