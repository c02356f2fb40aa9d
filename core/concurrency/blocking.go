// File: core/concurrency/blocking.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking-wait lock: waiters park on a weighted semaphore of size one
// until the holder releases or their deadline expires.

package concurrency

import (
	"context"
	"time"

	"github.com/momentics/hioload-conc/api"
	"golang.org/x/sync/semaphore"
)

var _ api.Locker = (*BlockingLock)(nil)

// BlockingLock is a timed mutual-exclusion lock. Waiters are served in FIFO
// order.
type BlockingLock struct {
	sem   *semaphore.Weighted
	owner owner
}

// NewBlockingLock returns an unheld lock.
func NewBlockingLock() *BlockingLock {
	return &BlockingLock{sem: semaphore.NewWeighted(1)}
}

// Acquire implements api.Locker.
func (l *BlockingLock) Acquire(timeout time.Duration) bool {
	me := l.owner.enter()
	switch {
	case timeout == 0:
		if !l.sem.TryAcquire(1) {
			return false
		}
	case timeout < 0:
		if err := l.sem.Acquire(context.Background(), 1); err != nil {
			return false
		}
	default:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := l.sem.Acquire(ctx, 1)
		cancel()
		if err != nil {
			return false
		}
	}
	l.owner.set(me)
	return true
}

// AcquireContext waits until the lock is taken or ctx is done. The returned
// error matches api.ErrLockTimeout.
func (l *BlockingLock) AcquireContext(ctx context.Context) error {
	me := l.owner.enter()
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return timeoutError(err)
	}
	l.owner.set(me)
	return nil
}

// Release implements api.Locker.
func (l *BlockingLock) Release() {
	l.owner.leave()
	l.sem.Release(1)
}

// Held reports whether some goroutine holds the lock. The answer may be
// stale by the time it is read; use it for assertions and diagnostics.
func (l *BlockingLock) Held() bool {
	return l.owner.held()
}
