// File: core/concurrency/owner.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/petermattis/goid"
)

// owner tracks which goroutine holds a lock. Zero means unheld; goroutine
// ids start at 1.
type owner struct {
	id atomic.Int64
}

// enter panics if the calling goroutine already holds the lock, which would
// otherwise deadlock silently. It returns the caller's goroutine id.
func (o *owner) enter() int64 {
	me := goid.Get()
	if o.id.Load() == me {
		panic(errors.AssertionFailedf("goroutine %d re-acquired a non-reentrant lock", me))
	}
	return me
}

func (o *owner) set(me int64) {
	o.id.Store(me)
}

// leave panics unless the calling goroutine holds the lock.
func (o *owner) leave() {
	me := goid.Get()
	if held := o.id.Load(); held != me {
		panic(errors.AssertionFailedf("goroutine %d released a lock held by %d", me, held))
	}
	o.id.Store(0)
}

// held reports whether any goroutine holds the lock.
func (o *owner) held() bool {
	return o.id.Load() != 0
}
