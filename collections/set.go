// File: collections/set.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collections

import "github.com/momentics/hioload-conc/api"

var _ api.Sizer = (*Set[string])(nil)

// Set is a thread-safe unique-key container with producer/consumer helpers:
// TryAny peeks an arbitrary member and TryTake removes one atomically.
// Which member is picked is unspecified and callers must not rely on it.
type Set[K comparable] struct {
	guard
	items map[K]struct{}
}

// NewSet creates an empty set.
func NewSet[K comparable](opts ...Option) *Set[K] {
	o := buildOptions("set", opts)
	return &Set[K]{
		guard: o.guard(),
		items: make(map[K]struct{}, o.capacity),
	}
}

// Contains reports membership. False on timeout.
func (s *Set[K]) Contains(key K) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	_, ok := s.items[key]
	return ok
}

// Add inserts key, returning api.ErrDuplicateKey if it is already a member.
func (s *Set[K]) Add(key K) error {
	if err := s.enter("add"); err != nil {
		return err
	}
	defer s.unlock()
	if _, ok := s.items[key]; ok {
		return s.errorf(api.ErrDuplicateKey, "%v", key)
	}
	s.items[key] = struct{}{}
	return nil
}

// TryAdd inserts key and reports whether it was newly added.
func (s *Set[K]) TryAdd(key K) bool {
	if !s.tryLock() {
		return false
	}
	defer s.unlock()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = struct{}{}
	return true
}

// Remove deletes key and reports whether it was a member.
func (s *Set[K]) Remove(key K) bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	return s.removeLocked(key)
}

// TryRemove is Remove bounded by the try timeout.
func (s *Set[K]) TryRemove(key K) bool {
	if !s.tryLock() {
		return false
	}
	defer s.unlock()
	return s.removeLocked(key)
}

func (s *Set[K]) removeLocked(key K) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

// TryAny returns an arbitrary member without removing it.
func (s *Set[K]) TryAny() (K, bool) {
	var zero K
	if !s.tryLock() {
		return zero, false
	}
	defer s.unlock()
	for k := range s.items {
		return k, true
	}
	return zero, false
}

// TryTake removes and returns an arbitrary member in one critical section,
// so concurrent consumers never receive the same member.
func (s *Set[K]) TryTake() (K, bool) {
	var zero K
	if !s.tryLock() {
		return zero, false
	}
	defer s.unlock()
	for k := range s.items {
		delete(s.items, k)
		return k, true
	}
	return zero, false
}

// Values returns a snapshot of the members. Nil on timeout.
func (s *Set[K]) Values() []K {
	if !s.lock() {
		return nil
	}
	defer s.unlock()
	out := make([]K, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	return out
}

// ForEach calls fn for each member of a snapshot, with the lock released.
// Members added or removed after the snapshot are not reflected.
func (s *Set[K]) ForEach(fn func(key K)) {
	for _, k := range s.Values() {
		fn(k)
	}
}

// Count returns the number of members. Zero on timeout.
func (s *Set[K]) Count() int {
	if !s.lock() {
		return 0
	}
	defer s.unlock()
	return len(s.items)
}

// Clear removes every member.
func (s *Set[K]) Clear() bool {
	if !s.lock() {
		return false
	}
	defer s.unlock()
	clear(s.items)
	return true
}

// Dispose drops the storage. It takes the lock first like every other
// mutator and must be the last operation on the set.
func (s *Set[K]) Dispose() {
	s.dispose(func() { s.items = nil })
}
