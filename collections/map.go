// File: collections/map.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Map is a hash map guarded by one lock per instance.

package collections

import (
	"time"

	"github.com/momentics/hioload-conc/api"
)

var _ api.Sizer = (*Map[string, int])(nil)

// Map is a thread-safe associative container. Every operation takes the
// map's own lock for its duration; a timed-out operation reports failure and
// leaves the map untouched.
type Map[K comparable, V any] struct {
	guard
	items map[K]V
}

// NewMap creates an empty map.
func NewMap[K comparable, V any](opts ...Option) *Map[K, V] {
	o := buildOptions("map", opts)
	return &Map[K, V]{
		guard: o.guard(),
		items: make(map[K]V, o.capacity),
	}
}

// Contains reports whether key is present. False on timeout.
func (m *Map[K, V]) Contains(key K) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	_, ok := m.items[key]
	return ok
}

// Add inserts key. It returns api.ErrDuplicateKey if key is present and
// api.ErrLockTimeout if the lock could not be taken.
func (m *Map[K, V]) Add(key K, value V) error {
	if err := m.enter("add"); err != nil {
		return err
	}
	defer m.unlock()
	if _, ok := m.items[key]; ok {
		return m.errorf(api.ErrDuplicateKey, "%v", key)
	}
	m.items[key] = value
	return nil
}

// TryAdd inserts key unless present. False if present or on timeout.
func (m *Map[K, V]) TryAdd(key K, value V) bool {
	if !m.tryLock() {
		return false
	}
	defer m.unlock()
	if _, ok := m.items[key]; ok {
		return false
	}
	m.items[key] = value
	return true
}

// Set inserts or replaces key. False on timeout.
func (m *Map[K, V]) Set(key K, value V) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	m.items[key] = value
	return true
}

// Update replaces the value of key with fn(old, present) in one critical
// section. fn must not call back into the map.
func (m *Map[K, V]) Update(key K, fn func(old V, present bool) V) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	old, ok := m.items[key]
	m.items[key] = fn(old, ok)
	return true
}

// Get returns the value of key, or the zero value if absent or on timeout.
func (m *Map[K, V]) Get(key K) V {
	v, _ := m.get(key, m.g.AcquireTimeout)
	return v
}

// TryGet returns the value of key and whether it was found within the try
// timeout.
func (m *Map[K, V]) TryGet(key K) (V, bool) {
	return m.get(key, m.g.TryTimeout)
}

func (m *Map[K, V]) get(key K, timeout time.Duration) (V, bool) {
	if !m.acquire(timeout) {
		var zero V
		return zero, false
	}
	defer m.unlock()
	v, ok := m.items[key]
	return v, ok
}

// Remove deletes key and reports whether it was present.
func (m *Map[K, V]) Remove(key K) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	return true
}

// TryRemove deletes key and returns its value.
func (m *Map[K, V]) TryRemove(key K) (V, bool) {
	var zero V
	if !m.tryLock() {
		return zero, false
	}
	defer m.unlock()
	v, ok := m.items[key]
	if !ok {
		return zero, false
	}
	delete(m.items, key)
	return v, true
}

// Keys returns a snapshot of the keys in unspecified order. Nil on timeout.
func (m *Map[K, V]) Keys() []K {
	if !m.lock() {
		return nil
	}
	defer m.unlock()
	keys := make([]K, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of the values in unspecified order.
func (m *Map[K, V]) Values() []V {
	if !m.lock() {
		return nil
	}
	defer m.unlock()
	values := make([]V, 0, len(m.items))
	for _, v := range m.items {
		values = append(values, v)
	}
	return values
}

// ForEach snapshots the keys, then looks each one up under the lock and
// calls fn with the lock released. Keys removed after the snapshot, or whose
// lookup times out, are skipped. fn may call back into the map.
func (m *Map[K, V]) ForEach(fn func(key K, value V)) {
	for _, k := range m.Keys() {
		v, ok := m.get(k, m.g.AcquireTimeout)
		if !ok {
			continue
		}
		fn(k, v)
	}
}

// ForEachValue calls fn for every entry while holding the lock for the whole
// iteration, giving one consistent view at the price of blocking every other
// caller. fn must not call back into the map. Returns false if the lock was
// not taken; fn stops the walk by returning false.
func (m *Map[K, V]) ForEachValue(fn func(key K, value V) bool) bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	for k, v := range m.items {
		if !fn(k, v) {
			break
		}
	}
	return true
}

// Count returns the number of entries, taken under the lock. Zero on timeout.
func (m *Map[K, V]) Count() int {
	if !m.lock() {
		return 0
	}
	defer m.unlock()
	return len(m.items)
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() bool {
	if !m.lock() {
		return false
	}
	defer m.unlock()
	clear(m.items)
	return true
}

// Dispose drops the storage. Every later call fails as if timed out. It must
// be the last operation on the map.
func (m *Map[K, V]) Dispose() {
	m.dispose(func() { m.items = nil })
}
