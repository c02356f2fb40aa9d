// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: poolable lifecycle and object reuse.

package api

// Poolable objects are reset on the way out of and back into a pool.
type Poolable interface {
	// Activate is invoked right before the object is handed to a borrower.
	Activate()

	// Deactivate is invoked when the borrower returns the object.
	Deactivate()
}

// ObjectPool provides reuse of Poolable instances.
type ObjectPool[T Poolable] interface {
	// Get returns an activated instance.
	Get() (T, error)

	// Release deactivates obj and makes it available again.
	Release(obj T) error

	// Available reports instances ready to be handed out without allocation.
	Available() int
}

// PoolObserver receives pool lifecycle events for telemetry.
type PoolObserver interface {
	ObserveFill(pool string, created int)
	ObserveGet(pool string)
}
