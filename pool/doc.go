// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity ring buffers and reusable object pools.
//
// RingBuffer and ObjectPool are single-goroutine structures.
// ConcurrentRingBuffer (spin lock by default) and ConcurrentObjectPool
// (blocking lock by default) wrap them so each operation is one critical
// section. A ConcurrentObjectPool may additionally cap the number of
// borrowed objects with WithMaxOutstanding.
//
// See ring.go, concurrent_ring.go, objpool.go for implementation details.
package pool
