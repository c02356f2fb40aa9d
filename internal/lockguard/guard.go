// File: internal/lockguard/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package lockguard couples a container's lock with its timeouts and
// disposal state. Collections and pools share it so every container takes,
// times out and refuses after Dispose the same way.
package lockguard

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/core/concurrency"
	"go.uber.org/zap"
)

// Guard is created once per container and never copied. disposed is only
// read or written while Locker is held.
type Guard struct {
	Locker         api.Locker
	Name           string
	AcquireTimeout time.Duration
	TryTimeout     time.Duration
	Log            *zap.Logger
	disposed       bool
}

// New returns a guard over l. A nil logger is replaced by a no-op one.
func New(l api.Locker, name string, acquireTimeout, tryTimeout time.Duration, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{
		Locker:         l,
		Name:           name,
		AcquireTimeout: acquireTimeout,
		TryTimeout:     tryTimeout,
		Log:            log,
	}
}

// Acquire takes the lock within timeout. It fails, holding nothing, on
// timeout or once the container has been disposed.
func (g *Guard) Acquire(timeout time.Duration) bool {
	if !g.Locker.Acquire(timeout) {
		g.Log.Debug("lock acquire timed out", zap.Duration("timeout", timeout))
		return false
	}
	if g.disposed {
		g.Locker.Release()
		return false
	}
	return true
}

// Lock is Acquire with the acquire timeout.
func (g *Guard) Lock() bool { return g.Acquire(g.AcquireTimeout) }

// TryLock is Acquire with the try timeout.
func (g *Guard) TryLock() bool { return g.Acquire(g.TryTimeout) }

// Unlock releases a lock taken by Acquire, Lock, TryLock or Enter.
func (g *Guard) Unlock() { g.Locker.Release() }

// Enter is Lock for the error-returning operations: api.ErrLockTimeout on
// timeout, api.ErrDisposed after Dispose.
func (g *Guard) Enter(op string) error {
	return g.EnterWithin(op, g.AcquireTimeout)
}

// EnterWithin is Enter with an explicit timeout.
func (g *Guard) EnterWithin(op string, timeout time.Duration) error {
	if !g.Locker.Acquire(timeout) {
		g.Log.Debug("lock acquire timed out", zap.String("op", op), zap.Duration("timeout", timeout))
		return errors.Wrapf(api.ErrLockTimeout, "%s: %s after %s", g.Name, op, timeout)
	}
	if g.disposed {
		g.Locker.Release()
		return errors.Wrapf(api.ErrDisposed, "%s: %s", g.Name, op)
	}
	return nil
}

// Dispose runs release under the lock once and marks the container dead.
// Later calls are no-ops. It waits for the lock without bound.
func (g *Guard) Dispose(release func()) {
	g.Locker.Acquire(concurrency.Infinite)
	defer g.Locker.Release()
	if g.disposed {
		return
	}
	release()
	g.disposed = true
	g.Log.Debug("container disposed")
}

// Errorf wraps sentinel with the container name and a formatted detail.
func (g *Guard) Errorf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, "%s: %s", g.Name, fmt.Sprintf(format, args...))
}
