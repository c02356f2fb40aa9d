// File: collections/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collections

import (
	"time"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control/config"
	"github.com/momentics/hioload-conc/core/concurrency"
	"github.com/momentics/hioload-conc/internal/lockguard"
	"go.uber.org/zap"
)

// Option configures a container at construction.
type Option func(*options)

type options struct {
	name           string
	strategy       concurrency.Strategy
	spinBudget     int
	locker         api.Locker
	acquireTimeout time.Duration
	tryTimeout     time.Duration
	capacity       int
	logger         *zap.Logger
	observer       api.LockObserver
}

func buildOptions(kind string, opts []Option) options {
	o := options{
		name:           kind,
		strategy:       concurrency.Blocking,
		acquireTimeout: concurrency.Infinite,
		tryTimeout:     concurrency.DefaultTryTimeout,
		capacity:       concurrency.DefaultInitialCapacity,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) guard() guard {
	l := o.locker
	if l == nil {
		l = o.strategy.NewWithBudget(o.spinBudget)
	}
	return guard{g: lockguard.New(
		concurrency.Instrument(l, o.name, o.observer),
		o.name,
		o.acquireTimeout,
		o.tryTimeout,
		o.logger.With(zap.String("container", o.name)),
	)}
}

// WithName labels the container in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithStrategy selects the lock strategy. Default Blocking.
func WithStrategy(s concurrency.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithLocker installs a caller-supplied lock. It must be fresh and must not
// be used by any other container.
func WithLocker(l api.Locker) Option {
	return func(o *options) { o.locker = l }
}

// WithAcquireTimeout bounds the non-try operations. Default
// concurrency.Infinite.
func WithAcquireTimeout(d time.Duration) Option {
	return func(o *options) { o.acquireTimeout = d }
}

// WithTryTimeout bounds the try-variants. Default
// concurrency.DefaultTryTimeout; zero makes them single-attempt.
func WithTryTimeout(d time.Duration) Option {
	return func(o *options) { o.tryTimeout = d }
}

// WithCapacity sets the initial capacity hint.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// WithLogger routes debug events (timeouts, disposal) to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver reports every lock acquisition to obs.
func WithObserver(obs api.LockObserver) Option {
	return func(o *options) { o.observer = obs }
}

// WithConfig applies a validated configuration snapshot. Options listed
// after it override individual fields.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.strategy = cfg.LockStrategy()
		o.spinBudget = cfg.SpinBudget
		o.acquireTimeout = cfg.AcquireTimeout
		o.tryTimeout = cfg.TryTimeout
		o.capacity = cfg.InitialCapacity
	}
}
