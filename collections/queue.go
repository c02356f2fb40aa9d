// File: collections/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collections

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
)

var _ api.Sizer = (*Queue[int])(nil)

// Queue is a FIFO over doubly linked nodes between permanent head and tail
// sentinels. The queue is empty iff head.next == tail. Count is a lock-free
// read.
type Queue[T any] struct {
	guard
	head, tail *dnode[T]
	count      atomic.Int64
	cache      dnodeCache[T]
}

// NewQueue creates an empty queue.
func NewQueue[T any](opts ...Option) *Queue[T] {
	o := buildOptions("queue", opts)
	q := &Queue[T]{guard: o.guard()}
	q.head, q.tail = &dnode[T]{}, &dnode[T]{}
	q.link()
	return q
}

func (q *Queue[T]) link() {
	q.head.next, q.tail.prev = q.tail, q.head
}

// checkChain panics if a sentinel link is broken. Called under the lock at
// the end of every mutation.
func (q *Queue[T]) checkChain() {
	if q.head.next == nil || q.tail.prev == nil || q.head.prev != nil || q.tail.next != nil {
		panic(errors.AssertionFailedf("%s: sentinel chain broken", q.g.Name))
	}
}

// Enqueue appends item before the tail sentinel.
func (q *Queue[T]) Enqueue(item T) bool {
	if !q.lock() {
		return false
	}
	defer q.unlock()
	n := q.cache.get(item)
	n.prev, n.next = q.tail.prev, q.tail
	q.tail.prev.next = n
	q.tail.prev = n
	q.count.Add(1)
	q.checkChain()
	return true
}

// TryDequeue removes the oldest item.
func (q *Queue[T]) TryDequeue() (T, bool) {
	if !q.tryLock() {
		var zero T
		return zero, false
	}
	defer q.unlock()
	return q.dequeueLocked()
}

// Dequeue removes the oldest item, returning api.ErrEmptyContainer when
// there is none.
func (q *Queue[T]) Dequeue() (T, error) {
	if err := q.enter("dequeue"); err != nil {
		var zero T
		return zero, err
	}
	defer q.unlock()
	item, ok := q.dequeueLocked()
	if !ok {
		return item, q.errorf(api.ErrEmptyContainer, "dequeue")
	}
	return item, nil
}

func (q *Queue[T]) dequeueLocked() (T, bool) {
	first := q.head.next
	if first == q.tail {
		var zero T
		return zero, false
	}
	item := first.item
	q.unlinkLocked(first)
	return item, true
}

func (q *Queue[T]) unlinkLocked(n *dnode[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	q.cache.put(n)
	q.count.Add(-1)
	q.checkChain()
}

// TryPeek returns the oldest item without removing it.
func (q *Queue[T]) TryPeek() (T, bool) {
	var zero T
	if !q.tryLock() {
		return zero, false
	}
	defer q.unlock()
	if q.head.next == q.tail {
		return zero, false
	}
	return q.head.next.item, true
}

// Contains walks the queue under the lock looking for an item eq to item.
func (q *Queue[T]) Contains(item T, eq func(a, b T) bool) bool {
	if !q.lock() {
		return false
	}
	defer q.unlock()
	for n := q.head.next; n != q.tail; n = n.next {
		if eq(n.item, item) {
			return true
		}
	}
	return false
}

// Remove unlinks the oldest item eq to item.
func (q *Queue[T]) Remove(item T, eq func(a, b T) bool) bool {
	if !q.lock() {
		return false
	}
	defer q.unlock()
	for n := q.head.next; n != q.tail; n = n.next {
		if eq(n.item, item) {
			q.unlinkLocked(n)
			return true
		}
	}
	return false
}

// ForEach calls fn oldest first while holding the lock. fn must not call
// back into the queue; returning false stops the walk.
func (q *Queue[T]) ForEach(fn func(item T) bool) bool {
	if !q.lock() {
		return false
	}
	defer q.unlock()
	for n := q.head.next; n != q.tail; n = n.next {
		if !fn(n.item) {
			break
		}
	}
	return true
}

// ToSlice returns the items oldest first. Nil on timeout.
func (q *Queue[T]) ToSlice() []T {
	if !q.lock() {
		return nil
	}
	defer q.unlock()
	out := make([]T, 0, q.count.Load())
	for n := q.head.next; n != q.tail; n = n.next {
		out = append(out, n.item)
	}
	return out
}

// Count returns the number of items without taking the lock.
func (q *Queue[T]) Count() int {
	return int(q.count.Load())
}

// IsEmpty is Count() == 0.
func (q *Queue[T]) IsEmpty() bool {
	return q.Count() == 0
}

// Clear drops every item.
func (q *Queue[T]) Clear() bool {
	if !q.lock() {
		return false
	}
	defer q.unlock()
	q.link()
	q.count.Store(0)
	return true
}

// Dispose drops the chain and node cache. It must be the last operation.
func (q *Queue[T]) Dispose() {
	q.dispose(func() {
		q.link()
		q.cache.reset()
		q.count.Store(0)
	})
}
