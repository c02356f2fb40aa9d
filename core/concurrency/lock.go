// File: core/concurrency/lock.go
// Package concurrency provides the two mutual-exclusion strategies every
// container in hioload-conc is parameterized over.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
)

// Infinite makes Acquire wait until the lock is free.
const Infinite time.Duration = -1

// DefaultTryTimeout bounds the try-variants of container operations unless
// overridden.
const DefaultTryTimeout = 4 * time.Second

// DefaultInitialCapacity is the capacity hint of growable containers when
// none is given.
const DefaultInitialCapacity = 16

// DefaultPoolFillSize is the number of objects an empty pool constructs at
// once.
const DefaultPoolFillSize = 8

// Strategy selects a lock implementation.
type Strategy int

const (
	// Blocking parks waiters; suitable for any critical section.
	Blocking Strategy = iota
	// Spin busy-waits; only for critical sections of a few instructions.
	Spin
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Blocking:
		return "blocking"
	case Spin:
		return "spin"
	default:
		return "unknown"
	}
}

// ParseStrategy accepts "blocking" or "spin", case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blocking", "":
		return Blocking, nil
	case "spin":
		return Spin, nil
	}
	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// New returns a fresh, unheld lock of this strategy.
func (s Strategy) New() api.Locker {
	return s.NewWithBudget(0)
}

// NewWithBudget is New with an explicit spin budget. The budget is ignored by
// blocking locks.
func (s Strategy) NewWithBudget(spinBudget int) api.Locker {
	if s == Spin {
		return NewSpinLock(spinBudget)
	}
	return NewBlockingLock()
}

// StrategyName names the strategy behind l, looking through instrumentation.
func StrategyName(l api.Locker) string {
	switch v := l.(type) {
	case *BlockingLock:
		return Blocking.String()
	case *SpinLock:
		return Spin.String()
	case *instrumented:
		return v.strategy
	default:
		return "custom"
	}
}

// With runs fn while holding l. It reports false, without running fn, when
// the lock could not be taken within timeout. The lock is released on every
// exit path, including a panic in fn.
func With(l api.Locker, timeout time.Duration, fn func()) bool {
	if !l.Acquire(timeout) {
		return false
	}
	defer l.Release()
	fn()
	return true
}

type instrumented struct {
	inner    api.Locker
	name     string
	strategy string
	obs      api.LockObserver
}

// Instrument wraps l so that every Acquire is reported to obs under the given
// container name. A nil observer returns l unchanged.
func Instrument(l api.Locker, name string, obs api.LockObserver) api.Locker {
	if obs == nil {
		return l
	}
	return &instrumented{inner: l, name: name, strategy: StrategyName(l), obs: obs}
}

func (i *instrumented) Acquire(timeout time.Duration) bool {
	start := time.Now()
	ok := i.inner.Acquire(timeout)
	i.obs.ObserveAcquire(i.name, i.strategy, time.Since(start), ok)
	return ok
}

func (i *instrumented) Release() {
	i.inner.Release()
}
