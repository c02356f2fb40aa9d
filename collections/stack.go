// File: collections/stack.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collections

import (
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
)

var _ api.Sizer = (*Stack[int])(nil)

// Stack is a LIFO over singly linked nodes hanging off a sentinel head.
// Count is a lock-free read of a counter every mutator maintains under the
// lock; it may be stale but is never torn.
type Stack[T any] struct {
	guard
	head  node[T] // sentinel; head.next is the top
	count atomic.Int64
	cache nodeCache[T]
}

// NewStack creates an empty stack.
func NewStack[T any](opts ...Option) *Stack[T] {
	o := buildOptions("stack", opts)
	return &Stack[T]{guard: o.guard()}
}

// Push places item on top. False on timeout.
func (s *Stack[T]) Push(item T) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	s.head.next = s.cache.get(item, s.head.next)
	s.count.Add(1)
	return true
}

// PushRange pushes items in order, so the last one ends on top, in a single
// critical section.
func (s *Stack[T]) PushRange(items ...T) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	for _, item := range items {
		s.head.next = s.cache.get(item, s.head.next)
	}
	s.count.Add(int64(len(items)))
	return true
}

// TryPop removes the top item.
func (s *Stack[T]) TryPop() (T, bool) {
	if !s.tryLock() {
		var zero T
		return zero, false
	}
	defer s.unlock()
	return s.popLocked()
}

// Pop removes the top item, returning api.ErrEmptyContainer when there is
// none.
func (s *Stack[T]) Pop() (T, error) {
	if err := s.enter("pop"); err != nil {
		var zero T
		return zero, err
	}
	defer s.unlock()
	item, ok := s.popLocked()
	if !ok {
		return item, s.errorf(api.ErrEmptyContainer, "pop")
	}
	return item, nil
}

func (s *Stack[T]) popLocked() (T, bool) {
	top := s.head.next
	if top == nil {
		var zero T
		return zero, false
	}
	item := top.item
	s.head.next = top.next
	s.cache.put(top)
	s.count.Add(-1)
	return item, true
}

// TryPeek returns the top item without removing it.
func (s *Stack[T]) TryPeek() (T, bool) {
	var zero T
	if !s.tryLock() {
		return zero, false
	}
	defer s.unlock()
	if s.head.next == nil {
		return zero, false
	}
	return s.head.next.item, true
}

// Contains walks the stack under the lock looking for an item eq to item.
func (s *Stack[T]) Contains(item T, eq func(a, b T) bool) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	for n := s.head.next; n != nil; n = n.next {
		if eq(n.item, item) {
			return true
		}
	}
	return false
}

// Remove unlinks the topmost item eq to item.
func (s *Stack[T]) Remove(item T, eq func(a, b T) bool) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	prev := &s.head
	for n := prev.next; n != nil; prev, n = n, n.next {
		if eq(n.item, item) {
			prev.next = n.next
			s.cache.put(n)
			s.count.Add(-1)
			return true
		}
	}
	return false
}

// ForEach calls fn from top to bottom while holding the lock. fn must not
// call back into the stack; returning false stops the walk.
func (s *Stack[T]) ForEach(fn func(item T) bool) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	for n := s.head.next; n != nil; n = n.next {
		if !fn(n.item) {
			break
		}
	}
	return true
}

// ToSlice returns the items from top to bottom. Nil on timeout.
func (s *Stack[T]) ToSlice() []T {
	if !s.lock() {
		return nil
	}
	defer s.unlock()
	out := make([]T, 0, s.count.Load())
	for n := s.head.next; n != nil; n = n.next {
		out = append(out, n.item)
	}
	return out
}

// Count returns the number of items without taking the lock.
func (s *Stack[T]) Count() int {
	return int(s.count.Load())
}

// IsEmpty is Count() == 0.
func (s *Stack[T]) IsEmpty() bool {
	return s.Count() == 0
}

// Clear drops every item.
func (s *Stack[T]) Clear() bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	s.head.next = nil
	s.count.Store(0)
	return true
}

// Dispose drops the chain and node cache. It must be the last operation.
func (s *Stack[T]) Dispose() {
	s.dispose(func() {
		s.head.next = nil
		s.cache.reset()
		s.count.Store(0)
	})
}
