// File: core/concurrency/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Spin-wait lock for very short critical sections (a pointer swap, a slot
// write). The flag is padded to its own cache line to avoid false sharing
// with neighbouring container fields.

package concurrency

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-conc/api"
	"golang.org/x/sys/cpu"
)

// DefaultSpinBudget is the number of busy attempts before the spinner starts
// yielding its processor between attempts.
const DefaultSpinBudget = 128

// deadline is consulted once per this many attempts; time.Now is far more
// expensive than a failed CAS.
const deadlineStride = 64

var _ api.Locker = (*SpinLock)(nil)

// SpinLock is a busy-wait mutual-exclusion lock. The zero value is unheld
// and uses DefaultSpinBudget.
type SpinLock struct {
	_      cpu.CacheLinePad
	state  atomic.Uint32
	_      cpu.CacheLinePad
	owner  owner
	budget int
}

// NewSpinLock returns an unheld lock. A budget <= 0 selects DefaultSpinBudget.
func NewSpinLock(budget int) *SpinLock {
	return &SpinLock{budget: budget}
}

// Acquire implements api.Locker.
func (l *SpinLock) Acquire(timeout time.Duration) bool {
	me := l.owner.enter()
	if l.state.CompareAndSwap(0, 1) {
		l.owner.set(me)
		return true
	}
	if timeout == 0 {
		return false
	}

	budget := l.budget
	if budget <= 0 {
		budget = DefaultSpinBudget
	}
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for i := 1; ; i++ {
		// Test before test-and-set keeps the line shared while the holder works.
		if l.state.Load() == 0 && l.state.CompareAndSwap(0, 1) {
			l.owner.set(me)
			return true
		}
		if timeout > 0 && i%deadlineStride == 0 && !time.Now().Before(deadline) {
			return false
		}
		if i >= budget {
			runtime.Gosched()
		}
	}
}

// Release implements api.Locker.
func (l *SpinLock) Release() {
	l.owner.leave()
	l.state.Store(0)
}

// Held reports whether some goroutine holds the lock.
func (l *SpinLock) Held() bool {
	return l.state.Load() != 0
}
