// File: collections/vector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Growable contiguous array. Growth is by a third rather than doubling,
// trading more frequent reallocation for lower peak memory.

package collections

import (
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
)

var _ api.Sizer = (*Vector[int])(nil)

// Vector is a thread-safe growable array. len(data) is the capacity and
// used <= len(data) always holds. Count reads a mirrored counter without the
// lock and is not synchronized with the unsynchronized view.
type Vector[T any] struct {
	guard
	data  []T
	used  int
	count atomic.Int64
	eq    func(a, b T) bool
}

// NewVector creates an empty vector whose IndexOf and Contains use ==.
func NewVector[T comparable](opts ...Option) *Vector[T] {
	return NewVectorFunc[T](func(a, b T) bool { return a == b }, opts...)
}

// NewVectorFunc creates an empty vector comparing elements with eq.
func NewVectorFunc[T any](eq func(a, b T) bool, opts ...Option) *Vector[T] {
	o := buildOptions("vector", opts)
	return &Vector[T]{
		guard: o.guard(),
		data:  make([]T, o.capacity),
		eq:    eq,
	}
}

// nextCapacity is the grown length for a backing array of length n.
func nextCapacity(n int) int {
	return n + n/3 + 1
}

// reserveLocked grows until n elements fit. The new array is installed before
// used may exceed the old length.
func (v *Vector[T]) reserveLocked(n int) {
	if n <= len(v.data) {
		return
	}
	size := len(v.data)
	for size < n {
		size = nextCapacity(size)
	}
	grown := make([]T, size)
	copy(grown, v.data[:v.used])
	v.data = grown
}

func (v *Vector[T]) setUsedLocked(n int) {
	v.used = n
	v.count.Store(int64(n))
}

func (v *Vector[T]) checkIndexLocked(i, limit int) error {
	if i < 0 || i >= limit {
		return v.errorf(api.ErrIndexOutOfRange, "index %d, count %d", i, v.used)
	}
	return nil
}

// At returns the element at i.
func (v *Vector[T]) At(i int) (T, error) {
	var zero T
	if err := v.enter("at"); err != nil {
		return zero, err
	}
	defer v.unlock()
	if err := v.checkIndexLocked(i, v.used); err != nil {
		return zero, err
	}
	return v.data[i], nil
}

// Set replaces the element at i.
func (v *Vector[T]) Set(i int, item T) error {
	if err := v.enter("set"); err != nil {
		return err
	}
	defer v.unlock()
	if err := v.checkIndexLocked(i, v.used); err != nil {
		return err
	}
	v.data[i] = item
	return nil
}

// Add appends item. False on timeout.
func (v *Vector[T]) Add(item T) bool {
	if !v.lock() {
		return false
	}
	defer v.unlock()
	v.reserveLocked(v.used + 1)
	v.data[v.used] = item
	v.setUsedLocked(v.used + 1)
	return true
}

// AddRange appends items in one critical section.
func (v *Vector[T]) AddRange(items ...T) bool {
	if !v.lock() {
		return false
	}
	defer v.unlock()
	v.reserveLocked(v.used + len(items))
	copy(v.data[v.used:], items)
	v.setUsedLocked(v.used + len(items))
	return true
}

// Pop removes and returns the last element, or api.ErrEmptyContainer.
func (v *Vector[T]) Pop() (T, error) {
	if err := v.enter("pop"); err != nil {
		var zero T
		return zero, err
	}
	defer v.unlock()
	item, ok := v.popLocked()
	if !ok {
		return item, v.errorf(api.ErrEmptyContainer, "pop")
	}
	return item, nil
}

// TryPop removes and returns the last element.
func (v *Vector[T]) TryPop() (T, bool) {
	if !v.tryLock() {
		var zero T
		return zero, false
	}
	defer v.unlock()
	return v.popLocked()
}

func (v *Vector[T]) popLocked() (T, bool) {
	var zero T
	if v.used == 0 {
		return zero, false
	}
	last := v.used - 1
	item := v.data[last]
	v.data[last] = zero
	v.setUsedLocked(last)
	return item, true
}

// Insert places item at index at, shifting later elements right. at may equal
// Count to append.
func (v *Vector[T]) Insert(at int, item T) error {
	if err := v.enter("insert"); err != nil {
		return err
	}
	defer v.unlock()
	if err := v.checkIndexLocked(at, v.used+1); err != nil {
		return err
	}
	v.reserveLocked(v.used + 1)
	copy(v.data[at+1:v.used+1], v.data[at:v.used])
	v.data[at] = item
	v.setUsedLocked(v.used + 1)
	return nil
}

// RemoveAt removes and returns the element at index at.
func (v *Vector[T]) RemoveAt(at int) (T, error) {
	var zero T
	if err := v.enter("remove_at"); err != nil {
		return zero, err
	}
	defer v.unlock()
	if err := v.checkIndexLocked(at, v.used); err != nil {
		return zero, err
	}
	item := v.data[at]
	copy(v.data[at:], v.data[at+1:v.used])
	v.data[v.used-1] = zero
	v.setUsedLocked(v.used - 1)
	return item, nil
}

// RemoveWhen removes every element matching pred, keeping the order of the
// rest, and returns how many were removed. pred runs under the lock and must
// not call back into the vector.
func (v *Vector[T]) RemoveWhen(pred func(item T) bool) int {
	if !v.lock() {
		return 0
	}
	defer v.unlock()
	kept := 0
	for i := 0; i < v.used; i++ {
		if pred(v.data[i]) {
			continue
		}
		v.data[kept] = v.data[i]
		kept++
	}
	removed := v.used - kept
	clear(v.data[kept:v.used])
	v.setUsedLocked(kept)
	return removed
}

// IndexOf returns the first index holding an element equal to item, or -1.
func (v *Vector[T]) IndexOf(item T) int {
	if !v.lock() {
		return -1
	}
	defer v.unlock()
	for i := 0; i < v.used; i++ {
		if v.eq(v.data[i], item) {
			return i
		}
	}
	return -1
}

// Contains is IndexOf(item) >= 0.
func (v *Vector[T]) Contains(item T) bool {
	return v.IndexOf(item) >= 0
}

// ToSlice returns a copy of the elements in order. Nil on timeout.
func (v *Vector[T]) ToSlice() []T {
	if !v.lock() {
		return nil
	}
	defer v.unlock()
	out := make([]T, v.used)
	copy(out, v.data[:v.used])
	return out
}

// CopyTo copies every element into dest starting at offset and returns the
// number copied. dest must have room for all of them.
func (v *Vector[T]) CopyTo(dest []T, offset int) (int, error) {
	if err := v.enter("copy_to"); err != nil {
		return 0, err
	}
	defer v.unlock()
	if offset < 0 || offset > len(dest) {
		return 0, v.errorf(api.ErrIndexOutOfRange, "offset %d, destination length %d", offset, len(dest))
	}
	if len(dest)-offset < v.used {
		return 0, v.errorf(api.ErrInvalidArgument, "destination has room for %d of %d elements", len(dest)-offset, v.used)
	}
	return copy(dest[offset:], v.data[:v.used]), nil
}

// ForEach calls fn for each element in order while holding the lock. fn must
// not call back into the vector; returning false stops the walk.
func (v *Vector[T]) ForEach(fn func(i int, item T) bool) bool {
	if !v.lock() {
		return false
	}
	defer v.unlock()
	for i := 0; i < v.used; i++ {
		if !fn(i, v.data[i]) {
			break
		}
	}
	return true
}

// Count returns the number of elements without taking the lock.
func (v *Vector[T]) Count() int {
	return int(v.count.Load())
}

// Capacity returns the length of the backing array. Zero on timeout.
func (v *Vector[T]) Capacity() int {
	if !v.lock() {
		return 0
	}
	defer v.unlock()
	return len(v.data)
}

// Clear drops every element, keeping the backing array.
func (v *Vector[T]) Clear() bool {
	if !v.lock() {
		return false
	}
	defer v.unlock()
	clear(v.data[:v.used])
	v.setUsedLocked(0)
	return true
}

// Dispose drops the backing array. It must be the last operation.
func (v *Vector[T]) Dispose() {
	v.dispose(func() {
		v.data = nil
		v.setUsedLocked(0)
	})
}

// Unsync returns a view that reads the vector's storage without taking its
// lock. See UnsyncView.
func (v *Vector[T]) Unsync() UnsyncView[T] {
	return UnsyncView[T]{v: v}
}

// UnsyncView is the unsynchronized fast path over a Vector.
//
// Hazard: none of its methods take the vector's lock. They are only correct
// while no other goroutine mutates the vector, for example after a
// producer phase has completed and been synchronized with by other means.
// Mixing them with concurrent Add/Insert/Remove is a data race: a growth may
// swap the backing array under an ElementAtRef pointer, and Len may not
// match the array being indexed.
type UnsyncView[T any] struct {
	v *Vector[T]
}

// Len returns the element count as last written.
func (u UnsyncView[T]) Len() int {
	return u.v.used
}

// ElementAt returns the element at i. It panics if i is out of range.
func (u UnsyncView[T]) ElementAt(i int) T {
	return u.v.data[:u.v.used][i]
}

// ElementAtRef returns a pointer into the backing array. The pointer is
// invalidated by any growth.
func (u UnsyncView[T]) ElementAtRef(i int) *T {
	return &u.v.data[:u.v.used][i]
}
