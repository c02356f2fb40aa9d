package pool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control"
	"github.com/momentics/hioload-conc/control/config"
	"github.com/momentics/hioload-conc/core/concurrency"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type conn struct {
	id          int
	active      bool
	activated   atomic.Int32
	deactivated atomic.Int32
}

func (c *conn) Activate() {
	c.active = true
	c.activated.Add(1)
}

func (c *conn) Deactivate() {
	c.active = false
	c.deactivated.Add(1)
}

func connFactory() (func() *conn, *atomic.Int32) {
	var made atomic.Int32
	return func() *conn {
		return &conn{id: int(made.Add(1))}
	}, &made
}

func TestObjectPoolRoundTrip(t *testing.T) {
	factory, made := connFactory()
	p := NewObjectPool(factory)

	c, err := p.Get()
	require.NoError(t, err)
	require.True(t, c.active)
	require.EqualValues(t, concurrency.DefaultPoolFillSize, made.Load())
	require.Equal(t, concurrency.DefaultPoolFillSize-1, p.Available())

	before := p.Available()
	obj, err := p.Get()
	require.NoError(t, err)
	require.NoError(t, p.Release(obj))
	require.Equal(t, before, p.Available())
	require.EqualValues(t, 1, obj.activated.Load())
	require.EqualValues(t, 1, obj.deactivated.Load())
	require.False(t, obj.active)

	// The last released object is handed out next.
	again, err := p.Get()
	require.NoError(t, err)
	require.Same(t, obj, again)
	require.Equal(t, concurrency.DefaultPoolFillSize, p.Created())
}

func TestObjectPoolFillsWhenEmpty(t *testing.T) {
	factory, made := connFactory()
	p := NewObjectPool(factory, WithFillSize(2))
	for i := 0; i < 5; i++ {
		_, err := p.Get()
		require.NoError(t, err)
	}
	require.EqualValues(t, 6, made.Load())
	require.Equal(t, 6, p.Created())
	require.Equal(t, 1, p.Available())
}

func TestObjectPoolDispose(t *testing.T) {
	factory, _ := connFactory()
	p := NewObjectPool(factory)
	c, err := p.Get()
	require.NoError(t, err)
	p.Dispose()
	p.Dispose()
	require.Zero(t, p.Available())
	_, err = p.Get()
	require.True(t, errors.Is(err, api.ErrDisposed))
	require.True(t, errors.Is(p.Release(c), api.ErrDisposed))
}

func TestObjectPoolNilFactoryPanics(t *testing.T) {
	require.Panics(t, func() { NewObjectPool[*conn](nil) })
}

func TestConcurrentObjectPoolNeverSharesAnObject(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory, WithFillSize(4))

	var inUse [1 << 12]atomic.Int32
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				c, err := p.Get()
				if err != nil {
					return err
				}
				if inUse[c.id].Add(1) != 1 {
					return errors.Newf("object %d handed out twice", c.id)
				}
				inUse[c.id].Add(-1)
				if err := p.Release(c); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, p.Created(), p.Available())
	require.LessOrEqual(t, p.Created(), 8*4)
}

func TestConcurrentObjectPoolRoundTripKeepsAvailable(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory)
	warm, err := p.Get()
	require.NoError(t, err)
	require.NoError(t, p.Release(warm))

	before := p.Available()
	c, err := p.Get()
	require.NoError(t, err)
	require.NoError(t, p.Release(c))
	require.Equal(t, before, p.Available())
	require.Same(t, warm, c)
	require.EqualValues(t, 2, c.activated.Load())
	require.EqualValues(t, 2, c.deactivated.Load())
}

func TestConcurrentObjectPoolMaxOutstanding(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory, WithMaxOutstanding(2), WithAcquireTimeout(20*time.Millisecond))

	a, err := p.Get()
	require.NoError(t, err)
	b, ok := p.TryGet()
	require.True(t, ok)
	require.Equal(t, 2, p.Outstanding())

	_, ok = p.TryGet()
	require.False(t, ok)
	_, err = p.Get()
	require.True(t, errors.Is(err, api.ErrLockTimeout))
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.GetContext(ctx)
	require.True(t, errors.Is(err, context.Canceled))

	got := make(chan *conn)
	go func() {
		c, err := p.GetContext(context.Background())
		if err == nil {
			got <- c
		}
		close(got)
	}()
	require.NoError(t, p.Release(a))
	c := <-got
	require.NotNil(t, c)

	require.NoError(t, p.Release(b))
	require.NoError(t, p.Release(c))
	require.Zero(t, p.Outstanding())
}

func TestConcurrentObjectPoolZeroTimeoutTriesOnce(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory, WithMaxOutstanding(4), WithAcquireTimeout(0))

	var borrowed []*conn
	for i := 0; i < 4; i++ {
		c, err := p.Get()
		require.NoError(t, err)
		require.True(t, c.active)
		borrowed = append(borrowed, c)
	}
	require.Equal(t, 4, p.Outstanding())

	_, err := p.Get()
	require.True(t, errors.Is(err, api.ErrLockTimeout))
	require.False(t, errors.Is(err, context.DeadlineExceeded))
	require.Equal(t, 4, p.Outstanding())

	require.NoError(t, p.Release(borrowed[0]))
	c, err := p.Get()
	require.NoError(t, err)
	borrowed[0] = c
	for _, c := range borrowed {
		require.NoError(t, p.Release(c))
	}
	require.Zero(t, p.Outstanding())
}

func TestConcurrentObjectPoolUnboundedOutstanding(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory)
	require.Equal(t, -1, p.Outstanding())
}

func TestConcurrentObjectPoolMetrics(t *testing.T) {
	mr := control.NewMetricsRegistry()
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory,
		WithName("conns"),
		WithFillSize(3),
		WithPoolObserver(mr),
		WithLockObserver(mr),
	)
	for i := 0; i < 4; i++ {
		_, err := p.Get()
		require.NoError(t, err)
	}
	series, err := testutil.GatherAndCount(mr.Registry(), "hioload_conc_pool_fills_total")
	require.NoError(t, err)
	require.Equal(t, 1, series)
	snap := mr.Snapshot()
	require.EqualValues(t, 2, snap[`hioload_conc_pool_fills_total{pool="conns"}`])
	require.EqualValues(t, 6, snap[`hioload_conc_pool_objects_created_total{pool="conns"}`])
	require.EqualValues(t, 4, snap[`hioload_conc_pool_gets_total{pool="conns"}`])
	require.Positive(t, snap[`hioload_conc_lock_wait_seconds_count{container="conns",strategy="blocking"}`])
}

func TestConcurrentObjectPoolWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PoolFillSize = 2
	cfg.PoolMaxOutstanding = 1
	factory, made := connFactory()
	p := NewConcurrentObjectPool(factory, WithConfig(cfg), WithTryTimeout(0))

	c, ok := p.TryGet()
	require.True(t, ok)
	require.EqualValues(t, 2, made.Load())
	_, ok = p.TryGet()
	require.False(t, ok)
	require.NoError(t, p.Release(c))
}

func TestConcurrentObjectPoolDispose(t *testing.T) {
	factory, _ := connFactory()
	p := NewConcurrentObjectPool(factory, WithMaxOutstanding(1))
	c, err := p.Get()
	require.NoError(t, err)
	p.Dispose()
	require.True(t, errors.Is(p.Release(c), api.ErrDisposed))
	require.Zero(t, p.Outstanding())
	_, err = p.Get()
	require.True(t, errors.Is(err, api.ErrDisposed))
	require.Zero(t, p.Outstanding())
}
