// File: collections/array_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ArrayQueue is a FIFO over a growable ring, for small items where one node
// allocation per element would dominate.

package collections

import (
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-conc/api"
)

var _ api.Sizer = (*ArrayQueue[int])(nil)

// ArrayQueue is a thread-safe FIFO backed by a power-of-two ring that grows
// and shrinks with its contents.
type ArrayQueue[T any] struct {
	guard
	q     *queue.Queue
	count atomic.Int64
}

// NewArrayQueue creates an empty queue.
func NewArrayQueue[T any](opts ...Option) *ArrayQueue[T] {
	o := buildOptions("array_queue", opts)
	return &ArrayQueue[T]{guard: o.guard(), q: queue.New()}
}

// Enqueue appends item.
func (a *ArrayQueue[T]) Enqueue(item T) bool {
	if !a.lock() {
		return false
	}
	defer a.unlock()
	a.q.Add(item)
	a.count.Add(1)
	return true
}

// TryDequeue removes the oldest item.
func (a *ArrayQueue[T]) TryDequeue() (T, bool) {
	if !a.tryLock() {
		var zero T
		return zero, false
	}
	defer a.unlock()
	return a.dequeueLocked()
}

// Dequeue removes the oldest item, or returns api.ErrEmptyContainer.
func (a *ArrayQueue[T]) Dequeue() (T, error) {
	if err := a.enter("dequeue"); err != nil {
		var zero T
		return zero, err
	}
	defer a.unlock()
	item, ok := a.dequeueLocked()
	if !ok {
		return item, a.errorf(api.ErrEmptyContainer, "dequeue")
	}
	return item, nil
}

func (a *ArrayQueue[T]) dequeueLocked() (T, bool) {
	if a.q.Length() == 0 {
		var zero T
		return zero, false
	}
	item := unbox[T](a.q.Remove())
	a.count.Add(-1)
	return item, true
}

// TryPeek returns the oldest item without removing it.
func (a *ArrayQueue[T]) TryPeek() (T, bool) {
	var zero T
	if !a.tryLock() {
		return zero, false
	}
	defer a.unlock()
	if a.q.Length() == 0 {
		return zero, false
	}
	return unbox[T](a.q.Peek()), true
}

// ForEach calls fn oldest first while holding the lock; returning false stops.
func (a *ArrayQueue[T]) ForEach(fn func(item T) bool) bool {
	if !a.lock() {
		return false
	}
	defer a.unlock()
	for i, n := 0, a.q.Length(); i < n; i++ {
		if !fn(unbox[T](a.q.Get(i))) {
			break
		}
	}
	return true
}

// ToSlice returns the items oldest first.
func (a *ArrayQueue[T]) ToSlice() []T {
	if !a.lock() {
		return nil
	}
	defer a.unlock()
	out := make([]T, a.q.Length())
	for i := range out {
		out[i] = unbox[T](a.q.Get(i))
	}
	return out
}

// Count returns the number of items without taking the lock.
func (a *ArrayQueue[T]) Count() int {
	return int(a.count.Load())
}

// Clear drops every item.
func (a *ArrayQueue[T]) Clear() bool {
	if !a.lock() {
		return false
	}
	defer a.unlock()
	a.q = queue.New()
	a.count.Store(0)
	return true
}

// Dispose drops the ring. It must be the last operation.
func (a *ArrayQueue[T]) Dispose() {
	a.dispose(func() {
		a.q = queue.New()
		a.count.Store(0)
	})
}

// unbox converts a stored element back to T. A nil interface stored for an
// interface-typed T comes back as T's zero value.
func unbox[T any](v any) T {
	t, _ := v.(T)
	return t
}
