// File: pool/concurrent_ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ring buffer shared between goroutines. Critical sections are a handful of
// index updates, so the default lock spins.

package pool

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/core/concurrency"
	"github.com/momentics/hioload-conc/internal/lockguard"
)

var (
	_ api.Ring[int] = (*ConcurrentRingBuffer[int])(nil)
	_ api.Sizer     = (*ConcurrentRingBuffer[int])(nil)
)

// ConcurrentRingBuffer guards a RingBuffer with one lock. Every method is a
// single critical section.
type ConcurrentRingBuffer[T any] struct {
	g    *lockguard.Guard
	ring *RingBuffer[T]
}

// NewConcurrentRingBuffer allocates a shared ring of the given capacity.
func NewConcurrentRingBuffer[T any](capacity int, policy OverflowPolicy, opts ...Option) *ConcurrentRingBuffer[T] {
	o := buildOptions("ring", concurrency.Spin, opts)
	return &ConcurrentRingBuffer[T]{
		g:    o.guard("ring"),
		ring: NewRingBuffer[T](capacity, policy),
	}
}

// Add appends item. Under OverflowStrict a full ring yields
// api.ErrCapacityExceeded.
func (c *ConcurrentRingBuffer[T]) Add(item T) error {
	if err := c.g.Enter("add"); err != nil {
		return err
	}
	defer c.g.Unlock()
	return errors.Wrap(c.ring.Add(item), c.g.Name)
}

// TryAdd appends item within the try timeout. False when the lock was not
// taken or a strict ring is full. It does not allocate under the lock.
func (c *ConcurrentRingBuffer[T]) TryAdd(item T) bool {
	if !c.g.TryLock() {
		return false
	}
	defer c.g.Unlock()
	if c.ring.Policy() == OverflowStrict && c.ring.IsFull() {
		return false
	}
	return c.ring.Add(item) == nil
}

// First returns the oldest item.
func (c *ConcurrentRingBuffer[T]) First() (T, error) {
	if err := c.g.Enter("first"); err != nil {
		var zero T
		return zero, err
	}
	defer c.g.Unlock()
	return c.ring.First()
}

// Last returns the newest item.
func (c *ConcurrentRingBuffer[T]) Last() (T, error) {
	if err := c.g.Enter("last"); err != nil {
		var zero T
		return zero, err
	}
	defer c.g.Unlock()
	return c.ring.Last()
}

// RemoveFirst removes the oldest item, or returns api.ErrEmptyContainer.
func (c *ConcurrentRingBuffer[T]) RemoveFirst() (T, error) {
	if err := c.g.Enter("remove_first"); err != nil {
		var zero T
		return zero, err
	}
	defer c.g.Unlock()
	return c.ring.RemoveFirst()
}

// TryRemoveFirst checks for an item and removes it in one critical section,
// so two consumers can never both see the same last item.
func (c *ConcurrentRingBuffer[T]) TryRemoveFirst() (T, bool) {
	if !c.g.TryLock() {
		var zero T
		return zero, false
	}
	defer c.g.Unlock()
	return c.ring.TryRemoveFirst()
}

// Drain moves up to limit items, oldest first, into b and returns how many were
// moved. limit <= 0 drains everything.
func (c *ConcurrentRingBuffer[T]) Drain(b *Batch[T], limit int) int {
	if !c.g.Lock() {
		return 0
	}
	defer c.g.Unlock()
	n := 0
	for limit <= 0 || n < limit {
		item, ok := c.ring.TryRemoveFirst()
		if !ok {
			break
		}
		b.Append(item)
		n++
	}
	return n
}

// IsFull reports whether the next Add overflows. False on timeout.
func (c *ConcurrentRingBuffer[T]) IsFull() bool {
	if !c.g.Lock() {
		return false
	}
	defer c.g.Unlock()
	return c.ring.IsFull()
}

// Len returns the number of items. Zero on timeout.
func (c *ConcurrentRingBuffer[T]) Len() int {
	if !c.g.Lock() {
		return 0
	}
	defer c.g.Unlock()
	return c.ring.Len()
}

// Count is Len, satisfying api.Sizer.
func (c *ConcurrentRingBuffer[T]) Count() int { return c.Len() }

// Cap returns the fixed capacity.
func (c *ConcurrentRingBuffer[T]) Cap() int { return c.ring.Cap() }

// Snapshot copies the items oldest first. Nil on timeout.
func (c *ConcurrentRingBuffer[T]) Snapshot() []T {
	if !c.g.Lock() {
		return nil
	}
	defer c.g.Unlock()
	return c.ring.AppendTo(make([]T, 0, c.ring.Len()))
}

// All yields a snapshot taken when iteration starts, with the lock released.
func (c *ConcurrentRingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range c.Snapshot() {
			if !yield(item) {
				return
			}
		}
	}
}

// Clear drops every item.
func (c *ConcurrentRingBuffer[T]) Clear() bool {
	if !c.g.Lock() {
		return false
	}
	defer c.g.Unlock()
	c.ring.Clear()
	return true
}

// Dispose clears the ring and fails every later call. It must be the last
// operation.
func (c *ConcurrentRingBuffer[T]) Dispose() {
	c.g.Dispose(c.ring.Clear)
}
