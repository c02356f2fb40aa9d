// File: pool/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"time"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control/config"
	"github.com/momentics/hioload-conc/core/concurrency"
	"github.com/momentics/hioload-conc/internal/lockguard"
	"go.uber.org/zap"
)

// Option configures a concurrent ring buffer or object pool.
type Option func(*options)

type options struct {
	name           string
	strategy       concurrency.Strategy
	spinBudget     int
	locker         api.Locker
	acquireTimeout time.Duration
	tryTimeout     time.Duration
	fillSize       int
	maxOutstanding int
	logger         *zap.Logger
	lockObserver   api.LockObserver
	poolObserver   api.PoolObserver
}

func buildOptions(kind string, strategy concurrency.Strategy, opts []Option) options {
	o := options{
		name:           kind,
		strategy:       strategy,
		acquireTimeout: concurrency.Infinite,
		tryTimeout:     concurrency.DefaultTryTimeout,
		fillSize:       concurrency.DefaultPoolFillSize,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// guard builds the structure's lock guard; field keys its name in the logs.
func (o *options) guard(field string) *lockguard.Guard {
	l := o.locker
	if l == nil {
		l = o.strategy.NewWithBudget(o.spinBudget)
	}
	return lockguard.New(
		concurrency.Instrument(l, o.name, o.lockObserver),
		o.name,
		o.acquireTimeout,
		o.tryTimeout,
		o.logger.With(zap.String(field, o.name)),
	)
}

// WithName labels the structure in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithStrategy overrides the default lock strategy (spin for rings,
// blocking for pools).
func WithStrategy(s concurrency.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithLocker installs a caller-supplied, unshared lock.
func WithLocker(l api.Locker) Option {
	return func(o *options) { o.locker = l }
}

// WithAcquireTimeout bounds the blocking operations.
func WithAcquireTimeout(d time.Duration) Option {
	return func(o *options) { o.acquireTimeout = d }
}

// WithTryTimeout bounds the try-variants.
func WithTryTimeout(d time.Duration) Option {
	return func(o *options) { o.tryTimeout = d }
}

// WithFillSize sets how many objects an empty pool constructs at once.
func WithFillSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.fillSize = n
		}
	}
}

// WithMaxOutstanding caps how many objects may be borrowed at the same
// time. Zero means unbounded.
func WithMaxOutstanding(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxOutstanding = n
		}
	}
}

// WithLogger routes debug events to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLockObserver reports every lock acquisition to obs.
func WithLockObserver(obs api.LockObserver) Option {
	return func(o *options) { o.lockObserver = obs }
}

// WithPoolObserver reports pool fills and gets to obs.
func WithPoolObserver(obs api.PoolObserver) Option {
	return func(o *options) { o.poolObserver = obs }
}

// WithConfig applies a validated configuration snapshot, including its lock
// strategy. Options listed after it override individual fields.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.strategy = cfg.LockStrategy()
		o.spinBudget = cfg.SpinBudget
		o.acquireTimeout = cfg.AcquireTimeout
		o.tryTimeout = cfg.TryTimeout
		if cfg.PoolFillSize > 0 {
			o.fillSize = cfg.PoolFillSize
		}
		o.maxOutstanding = cfg.PoolMaxOutstanding
	}
}
