// File: pool/objpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Object pools of api.Poolable values. An empty pool constructs a batch of
// objects at once; borrowed objects are activated on the way out and
// deactivated on the way back.

package pool

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/marusama/semaphore"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/core/concurrency"
	"github.com/momentics/hioload-conc/internal/lockguard"
	"go.uber.org/zap"
)

var (
	_ api.ObjectPool[api.Poolable] = (*ObjectPool[api.Poolable])(nil)
	_ api.ObjectPool[api.Poolable] = (*ConcurrentObjectPool[api.Poolable])(nil)
)

// ObjectPool is the single-goroutine pool. The free list is a stack, so the
// most recently released object is handed out next.
type ObjectPool[T api.Poolable] struct {
	name     string
	factory  func() T
	free     []T
	fillSize int
	created  int
	disposed bool
	log      *zap.Logger
	observer api.PoolObserver
}

// NewObjectPool creates an empty pool. Nothing is constructed until the
// first Get.
func NewObjectPool[T api.Poolable](factory func() T, opts ...Option) *ObjectPool[T] {
	o := buildOptions("object_pool", concurrency.Blocking, opts)
	return newObjectPool(factory, &o)
}

func newObjectPool[T api.Poolable](factory func() T, o *options) *ObjectPool[T] {
	if factory == nil {
		panic(errors.AssertionFailedf("%s: nil factory", o.name))
	}
	return &ObjectPool[T]{
		name:     o.name,
		factory:  factory,
		free:     make([]T, 0, o.fillSize),
		fillSize: o.fillSize,
		log:      o.logger.With(zap.String("pool", o.name)),
		observer: o.poolObserver,
	}
}

// Get pops a free object, filling the pool first if it is empty, and
// activates it.
func (p *ObjectPool[T]) Get() (T, error) {
	obj, err := p.take()
	if err != nil {
		return obj, err
	}
	obj.Activate()
	return obj, nil
}

// take pops without activating. Concurrent callers hold the pool lock.
func (p *ObjectPool[T]) take() (T, error) {
	if p.disposed {
		var zero T
		return zero, errors.Wrapf(api.ErrDisposed, "%s: get", p.name)
	}
	if len(p.free) == 0 {
		p.fill()
	}
	last := len(p.free) - 1
	obj := p.free[last]
	var zero T
	p.free[last] = zero
	p.free = p.free[:last]
	if p.observer != nil {
		p.observer.ObserveGet(p.name)
	}
	return obj, nil
}

func (p *ObjectPool[T]) fill() {
	for i := 0; i < p.fillSize; i++ {
		p.free = append(p.free, p.factory())
	}
	p.created += p.fillSize
	p.log.Debug("pool filled", zap.Int("created", p.fillSize), zap.Int("total", p.created))
	if p.observer != nil {
		p.observer.ObserveFill(p.name, p.fillSize)
	}
}

// Release deactivates obj and returns it to the free list. Releasing an
// object twice makes it available twice; that is the caller's bug.
func (p *ObjectPool[T]) Release(obj T) error {
	if p.disposed {
		return errors.Wrapf(api.ErrDisposed, "%s: release", p.name)
	}
	obj.Deactivate()
	p.put(obj)
	return nil
}

func (p *ObjectPool[T]) put(obj T) {
	p.free = append(p.free, obj)
}

// Available returns how many objects can be handed out without constructing.
func (p *ObjectPool[T]) Available() int { return len(p.free) }

// Created returns how many objects the factory has constructed.
func (p *ObjectPool[T]) Created() int { return p.created }

// Dispose drops the free list. Borrowed objects are not tracked and are left
// to the garbage collector.
func (p *ObjectPool[T]) Dispose() {
	if p.disposed {
		return
	}
	clear(p.free)
	p.free = nil
	p.disposed = true
	p.log.Debug("pool disposed", zap.Int("created", p.created))
}

// ConcurrentObjectPool is ObjectPool behind a lock, blocking by default.
// Filling and popping happen in one critical section, so a concurrent Get
// can never find the pool emptied between the two. Activate and Deactivate
// run with the lock released.
type ConcurrentObjectPool[T api.Poolable] struct {
	g     *lockguard.Guard
	inner *ObjectPool[T]
	// permits bounds borrowed objects; nil when unbounded.
	permits semaphore.Semaphore
}

// NewConcurrentObjectPool creates an empty shared pool.
func NewConcurrentObjectPool[T api.Poolable](factory func() T, opts ...Option) *ConcurrentObjectPool[T] {
	o := buildOptions("object_pool", concurrency.Blocking, opts)
	p := &ConcurrentObjectPool[T]{
		g:     o.guard("pool"),
		inner: newObjectPool(factory, &o),
	}
	if o.maxOutstanding > 0 {
		p.permits = semaphore.New(o.maxOutstanding)
	}
	return p
}

// Get borrows an object, waiting up to the acquire timeout for a permit and
// for the lock. A zero acquire timeout makes both waits a single try.
func (p *ConcurrentObjectPool[T]) Get() (T, error) {
	switch {
	case p.g.AcquireTimeout == 0:
		if p.permits != nil && !p.permits.TryAcquire(1) {
			var zero T
			return zero, p.g.Errorf(api.ErrLockTimeout, "no outstanding slot free")
		}
		return p.borrow(0)
	case p.g.AcquireTimeout < 0:
		return p.GetContext(context.Background())
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.g.AcquireTimeout)
	defer cancel()
	return p.GetContext(ctx)
}

// GetContext is Get with the permit wait bounded by ctx instead of the
// acquire timeout. The lock itself is still bounded by the acquire timeout.
func (p *ConcurrentObjectPool[T]) GetContext(ctx context.Context) (T, error) {
	if p.permits != nil {
		if err := p.permits.Acquire(ctx, 1); err != nil {
			var zero T
			return zero, errors.Mark(
				errors.Wrapf(err, "%s: waiting for an outstanding slot", p.g.Name),
				api.ErrLockTimeout)
		}
	}
	return p.borrow(p.g.AcquireTimeout)
}

// TryGet borrows an object within the try timeout. False when no permit is
// free or the lock was not taken.
func (p *ConcurrentObjectPool[T]) TryGet() (T, bool) {
	var zero T
	if p.permits != nil && !p.permits.TryAcquire(1) {
		return zero, false
	}
	obj, err := p.borrow(p.g.TryTimeout)
	if err != nil {
		return zero, false
	}
	return obj, true
}

// borrow pops and activates an object with a permit already held. The permit
// is given back on failure.
func (p *ConcurrentObjectPool[T]) borrow(timeout time.Duration) (T, error) {
	var zero T
	if err := p.g.EnterWithin("get", timeout); err != nil {
		p.releasePermit()
		return zero, err
	}
	obj, err := p.inner.take()
	p.g.Unlock()
	if err != nil {
		p.releasePermit()
		return zero, err
	}
	obj.Activate()
	return obj, nil
}

// Release deactivates obj and returns it. Each successful Get must be paired
// with exactly one Release.
func (p *ConcurrentObjectPool[T]) Release(obj T) error {
	obj.Deactivate()
	err := p.g.Enter("release")
	if err == nil {
		p.inner.put(obj)
		p.g.Unlock()
	}
	p.releasePermit()
	return err
}

func (p *ConcurrentObjectPool[T]) releasePermit() {
	if p.permits != nil {
		p.permits.Release(1)
	}
}

// Available returns the free object count. Zero on timeout or after Dispose.
func (p *ConcurrentObjectPool[T]) Available() int {
	if !p.g.Lock() {
		return 0
	}
	defer p.g.Unlock()
	return p.inner.Available()
}

// Count is Available, satisfying api.Sizer.
func (p *ConcurrentObjectPool[T]) Count() int { return p.Available() }

// Created returns how many objects the factory has constructed. Zero on
// timeout or after Dispose.
func (p *ConcurrentObjectPool[T]) Created() int {
	if !p.g.Lock() {
		return 0
	}
	defer p.g.Unlock()
	return p.inner.Created()
}

// Outstanding returns how many permits are held by borrowers, or -1 when the
// pool is unbounded.
func (p *ConcurrentObjectPool[T]) Outstanding() int {
	if p.permits == nil {
		return -1
	}
	return p.permits.GetCount()
}

// Dispose drops the free list; later Get and Release calls fail with
// api.ErrDisposed. It must be the last operation.
func (p *ConcurrentObjectPool[T]) Dispose() {
	p.g.Dispose(p.inner.Dispose)
}
