// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity circular buffer. Not safe for concurrent use; see
// ConcurrentRingBuffer for the shared variant.

package pool

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
)

var _ api.Ring[int] = (*RingBuffer[int])(nil)

// OverflowPolicy decides what Add does on a full buffer.
type OverflowPolicy int

const (
	// OverflowStrict rejects the item with api.ErrCapacityExceeded.
	OverflowStrict OverflowPolicy = iota
	// OverflowLenient overwrites the oldest item; the count stays at capacity.
	OverflowLenient
)

// String implements fmt.Stringer.
func (p OverflowPolicy) String() string {
	if p == OverflowLenient {
		return "lenient"
	}
	return "strict"
}

// RingBuffer holds at most Cap items. Logical index i lives at
// buf[(start+i) % len(buf)], and 0 <= count <= len(buf).
type RingBuffer[T any] struct {
	buf    []T
	start  int
	count  int
	policy OverflowPolicy
}

// NewRingBuffer allocates a buffer of the given capacity. It panics if
// capacity is not positive.
func NewRingBuffer[T any](capacity int, policy OverflowPolicy) *RingBuffer[T] {
	if capacity <= 0 {
		panic(errors.AssertionFailedf("ring buffer capacity must be positive, got %d", capacity))
	}
	return &RingBuffer[T]{buf: make([]T, capacity), policy: policy}
}

func (r *RingBuffer[T]) slot(i int) int {
	return (r.start + i) % len(r.buf)
}

// Add appends item at the back.
func (r *RingBuffer[T]) Add(item T) error {
	if r.count == len(r.buf) {
		if r.policy == OverflowStrict {
			return errors.Wrapf(api.ErrCapacityExceeded, "ring buffer holds %d", len(r.buf))
		}
		r.buf[r.start] = item
		r.start = r.slot(1)
		return nil
	}
	r.buf[r.slot(r.count)] = item
	r.count++
	return nil
}

// First returns the oldest item.
func (r *RingBuffer[T]) First() (T, error) {
	return r.At(0)
}

// Last returns the newest item.
func (r *RingBuffer[T]) Last() (T, error) {
	return r.At(r.count - 1)
}

// At returns the item at logical index i, 0 being the oldest.
func (r *RingBuffer[T]) At(i int) (T, error) {
	if r.count == 0 {
		var zero T
		return zero, errors.Wrap(api.ErrEmptyContainer, "ring buffer")
	}
	if i < 0 || i >= r.count {
		var zero T
		return zero, errors.Wrapf(api.ErrIndexOutOfRange, "ring buffer index %d, count %d", i, r.count)
	}
	return r.buf[r.slot(i)], nil
}

// RemoveFirst removes and returns the oldest item.
func (r *RingBuffer[T]) RemoveFirst() (T, error) {
	item, ok := r.TryRemoveFirst()
	if !ok {
		return item, errors.Wrap(api.ErrEmptyContainer, "ring buffer remove first")
	}
	return item, nil
}

// TryRemoveFirst is RemoveFirst reporting emptiness as false. It never
// allocates.
func (r *RingBuffer[T]) TryRemoveFirst() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	item := r.buf[r.start]
	r.buf[r.start] = zero
	r.start = r.slot(1)
	r.count--
	return item, true
}

// IsFull reports whether the next Add overflows.
func (r *RingBuffer[T]) IsFull() bool { return r.count == len(r.buf) }

// IsEmpty reports whether there are no items.
func (r *RingBuffer[T]) IsEmpty() bool { return r.count == 0 }

// Len returns the number of items.
func (r *RingBuffer[T]) Len() int { return r.count }

// Cap returns the fixed capacity.
func (r *RingBuffer[T]) Cap() int { return len(r.buf) }

// Policy returns the overflow policy chosen at construction.
func (r *RingBuffer[T]) Policy() OverflowPolicy { return r.policy }

// All yields the items oldest first. The sequence is bounded by the count
// at the time iteration starts; mutating the buffer during iteration is not
// supported.
func (r *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i, n := 0, r.count; i < n; i++ {
			if !yield(r.buf[r.slot(i)]) {
				return
			}
		}
	}
}

// AppendTo appends the items oldest first to dst.
func (r *RingBuffer[T]) AppendTo(dst []T) []T {
	for i := 0; i < r.count; i++ {
		dst = append(dst, r.buf[r.slot(i)])
	}
	return dst
}

// Clear drops every item.
func (r *RingBuffer[T]) Clear() {
	clear(r.buf)
	r.start, r.count = 0, 0
}
