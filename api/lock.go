// File: api/lock.go
// Author: momentics <momentics@gmail.com>
//
// Mutual-exclusion contract every container is parameterized over.

package api

import "time"

// Locker is a non-reentrant mutual-exclusion handle owned by exactly one
// container.
type Locker interface {
	// Acquire takes the lock, waiting at most timeout. A negative timeout
	// waits forever, zero tries once. Returns false without holding the lock
	// when the wait expires.
	Acquire(timeout time.Duration) bool

	// Release gives up a lock taken by a successful Acquire on the same
	// goroutine.
	Release()
}

// LockObserver receives one callback per Acquire on an instrumented lock.
type LockObserver interface {
	ObserveAcquire(container, strategy string, waited time.Duration, acquired bool)
}

// Sizer is implemented by every container.
type Sizer interface {
	Count() int
}
