// Package api
// Author: momentics@gmail.com
//
// Bounded ring buffer contract for cross-goroutine producer/consumer.

package api

// Ring is a fixed-capacity FIFO contract.
type Ring[T any] interface {
	// Add appends item; ErrCapacityExceeded when full under strict policy.
	Add(item T) error
	// TryRemoveFirst removes the oldest item, false if empty.
	TryRemoveFirst() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}
