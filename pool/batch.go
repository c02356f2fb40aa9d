// File: pool/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reusable batch of items moved out of a ring in one critical section.
// Not safe for concurrent use.

package pool

// Batch is a slice wrapper that keeps its backing array across Reset, so a
// consumer draining a ring in a loop does not allocate.
type Batch[T any] struct {
	items []T
}

// NewBatch creates a batch with room for capacity items.
func NewBatch[T any](capacity int) *Batch[T] {
	return &Batch[T]{items: make([]T, 0, capacity)}
}

// Append adds item at the end.
func (b *Batch[T]) Append(item T) {
	b.items = append(b.items, item)
}

// Len returns the number of items.
func (b *Batch[T]) Len() int {
	return len(b.items)
}

// Get returns the item at idx.
func (b *Batch[T]) Get(idx int) T {
	return b.items[idx]
}

// Items exposes the batch contents. The slice is reused after Reset.
func (b *Batch[T]) Items() []T {
	return b.items
}

// Split returns views of [0, idx) and [idx, Len). Both share the backing
// array with b.
func (b *Batch[T]) Split(idx int) (first, second *Batch[T]) {
	return &Batch[T]{items: b.items[:idx:idx]}, &Batch[T]{items: b.items[idx:]}
}

// Reset empties the batch, zeroing the old slots, and keeps the capacity.
func (b *Batch[T]) Reset() {
	clear(b.items)
	b.items = b.items[:0]
}
