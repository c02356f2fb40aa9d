// File: collections/ordered_map.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OrderedMap keeps its keys sorted in a B-tree, adding range walks and
// min/max lookups to the Map contract.

package collections

import (
	"cmp"

	"github.com/google/btree"
	"github.com/momentics/hioload-conc/api"
)

const btreeDegree = 32

var _ api.Sizer = (*OrderedMap[int, int])(nil)

type entry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

func (e *entry[K, V]) Less(than btree.Item) bool {
	return e.key < than.(*entry[K, V]).key
}

// OrderedMap is a thread-safe sorted map.
type OrderedMap[K cmp.Ordered, V any] struct {
	guard
	tree *btree.BTree
}

// NewOrderedMap creates an empty sorted map. The capacity hint is ignored.
func NewOrderedMap[K cmp.Ordered, V any](opts ...Option) *OrderedMap[K, V] {
	o := buildOptions("ordered_map", opts)
	return &OrderedMap[K, V]{
		guard: o.guard(),
		tree:  btree.New(btreeDegree),
	}
}

func pivot[K cmp.Ordered, V any](key K) *entry[K, V] {
	return &entry[K, V]{key: key}
}

// Contains reports whether key is present.
func (m *OrderedMap[K, V]) Contains(key K) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	return m.tree.Has(pivot[K, V](key))
}

// Add inserts key, returning api.ErrDuplicateKey if present.
func (m *OrderedMap[K, V]) Add(key K, value V) error {
	if err := m.enter("add"); err != nil {
		return err
	}
	defer m.unlock()
	if m.tree.Has(pivot[K, V](key)) {
		return m.errorf(api.ErrDuplicateKey, "%v", key)
	}
	m.tree.ReplaceOrInsert(&entry[K, V]{key: key, value: value})
	return nil
}

// TryAdd inserts key unless present.
func (m *OrderedMap[K, V]) TryAdd(key K, value V) bool {
	if !m.tryLock() {
		return false
	}
	defer m.unlock()
	if m.tree.Has(pivot[K, V](key)) {
		return false
	}
	m.tree.ReplaceOrInsert(&entry[K, V]{key: key, value: value})
	return true
}

// Set inserts or replaces key.
func (m *OrderedMap[K, V]) Set(key K, value V) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	m.tree.ReplaceOrInsert(&entry[K, V]{key: key, value: value})
	return true
}

// Get returns the value of key or the zero value.
func (m *OrderedMap[K, V]) Get(key K) V {
	v, _ := m.lookup(key, false)
	return v
}

// TryGet returns the value of key within the try timeout.
func (m *OrderedMap[K, V]) TryGet(key K) (V, bool) {
	return m.lookup(key, true)
}

func (m *OrderedMap[K, V]) lookup(key K, try bool) (V, bool) {
	var zero V
	timeout := m.g.AcquireTimeout
	if try {
		timeout = m.g.TryTimeout
	}
	if !m.acquire(timeout) {
		return zero, false
	}
	defer m.unlock()
	it := m.tree.Get(pivot[K, V](key))
	if it == nil {
		return zero, false
	}
	return it.(*entry[K, V]).value, true
}

// Remove deletes key and reports whether it was present.
func (m *OrderedMap[K, V]) Remove(key K) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	return m.tree.Delete(pivot[K, V](key)) != nil
}

// TryRemove deletes key and returns its value.
func (m *OrderedMap[K, V]) TryRemove(key K) (V, bool) {
	var zero V
	if !m.tryLock() {
		return zero, false
	}
	defer m.unlock()
	it := m.tree.Delete(pivot[K, V](key))
	if it == nil {
		return zero, false
	}
	return it.(*entry[K, V]).value, true
}

// Keys returns the keys in ascending order.
func (m *OrderedMap[K, V]) Keys() []K {
	if !m.lock() {
		return nil
	}
	defer m.unlock()
	keys := make([]K, 0, m.tree.Len())
	m.tree.Ascend(func(i btree.Item) bool {
		keys = append(keys, i.(*entry[K, V]).key)
		return true
	})
	return keys
}

// Values returns the values in ascending key order.
func (m *OrderedMap[K, V]) Values() []V {
	if !m.lock() {
		return nil
	}
	defer m.unlock()
	values := make([]V, 0, m.tree.Len())
	m.tree.Ascend(func(i btree.Item) bool {
		values = append(values, i.(*entry[K, V]).value)
		return true
	})
	return values
}

// Min returns the smallest key and its value.
func (m *OrderedMap[K, V]) Min() (K, V, bool) {
	return m.edge(true)
}

// Max returns the largest key and its value.
func (m *OrderedMap[K, V]) Max() (K, V, bool) {
	return m.edge(false)
}

func (m *OrderedMap[K, V]) edge(first bool) (K, V, bool) {
	var (
		zk K
		zv V
	)
	if !m.lock() {
		return zk, zv, false
	}
	defer m.unlock()
	var it btree.Item
	if first {
		it = m.tree.Min()
	} else {
		it = m.tree.Max()
	}
	if it == nil {
		return zk, zv, false
	}
	e := it.(*entry[K, V])
	return e.key, e.value, true
}

// ForEach walks a snapshot of the keys in order, re-reading each value under
// the lock and calling fn unlocked. Keys removed meanwhile are skipped.
func (m *OrderedMap[K, V]) ForEach(fn func(key K, value V)) {
	for _, k := range m.Keys() {
		if v, ok := m.lookup(k, false); ok {
			fn(k, v)
		}
	}
}

// Ascend calls fn for each entry with key >= from, in order, holding the lock
// throughout. fn must not call back into the map; returning false stops.
func (m *OrderedMap[K, V]) Ascend(from K, fn func(key K, value V) bool) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	m.tree.AscendGreaterOrEqual(pivot[K, V](from), func(i btree.Item) bool {
		e := i.(*entry[K, V])
		return fn(e.key, e.value)
	})
	return true
}

// AscendRange is Ascend restricted to keys in [from, to).
func (m *OrderedMap[K, V]) AscendRange(from, to K, fn func(key K, value V) bool) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	m.tree.AscendRange(pivot[K, V](from), pivot[K, V](to), func(i btree.Item) bool {
		e := i.(*entry[K, V])
		return fn(e.key, e.value)
	})
	return true
}

// Count returns the number of entries, taken under the lock.
func (m *OrderedMap[K, V]) Count() int {
	if !m.lock() {
		return 0
	}
	defer m.unlock()
	return m.tree.Len()
}

// Clear removes every entry.
func (m *OrderedMap[K, V]) Clear() bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	m.tree = btree.New(btreeDegree)
	return true
}

// Dispose drops the tree. It must be the last operation.
func (m *OrderedMap[K, V]) Dispose() {
	m.dispose(func() { m.tree = btree.New(btreeDegree) })
}
