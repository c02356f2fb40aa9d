package collections

import (
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMapConcurrentTryAdd(t *testing.T) {
	for name, opt := range strategyOptions {
		t.Run(name, func(t *testing.T) {
			m := NewMap[int, string](opt)
			const n = 1000
			var g errgroup.Group
			for i := 0; i < n; i++ {
				g.Go(func() error {
					if !m.TryAdd(i, strconv.Itoa(i)) {
						return errors.Newf("TryAdd(%d) failed", i)
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())
			require.Equal(t, n, m.Count())
			require.Equal(t, "500", m.Get(500))
		})
	}
}

func TestMapAddDuplicate(t *testing.T) {
	m := NewMap[string, int]()
	require.NoError(t, m.Add("a", 1))
	err := m.Add("a", 2)
	require.True(t, errors.Is(err, api.ErrDuplicateKey))
	require.Equal(t, api.ErrCodeDuplicateKey, api.CodeOf(err))
	require.Equal(t, 1, m.Get("a"))
	require.False(t, m.TryAdd("a", 3))
}

func TestMapGetSetRemove(t *testing.T) {
	m := NewMap[string, int](WithCapacity(4))

	_, ok := m.TryGet("missing")
	require.False(t, ok)
	require.Zero(t, m.Get("missing"))

	require.True(t, m.Set("k", 1))
	require.True(t, m.Set("k", 2))
	require.Equal(t, 2, m.Get("k"))
	require.True(t, m.Contains("k"))

	v, ok := m.TryRemove("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.False(t, m.Remove("k"))
	require.False(t, m.Contains("k"))

	m.Set("x", 1)
	require.True(t, m.Remove("x"))
	require.Zero(t, m.Count())
}

func TestMapUpdate(t *testing.T) {
	m := NewMap[string, int]()
	var g errgroup.Group
	for i := 0; i < 200; i++ {
		g.Go(func() error {
			m.Update("hits", func(old int, _ bool) int { return old + 1 })
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 200, m.Get("hits"))

	m.Update("fresh", func(old int, present bool) int {
		assert.False(t, present)
		return 7
	})
	require.Equal(t, 7, m.Get("fresh"))
}

func TestMapTimeoutLeavesMapUnchanged(t *testing.T) {
	l, release := heldLock()
	m := NewMap[int, int](WithLocker(l), WithTryTimeout(0), WithAcquireTimeout(10*time.Millisecond))

	require.False(t, m.TryAdd(1, 1))
	_, ok := m.TryGet(1)
	require.False(t, ok)
	require.False(t, m.Set(1, 1))
	require.Zero(t, m.Count())

	err := m.Add(1, 1)
	require.True(t, errors.Is(err, api.ErrLockTimeout))
	require.True(t, api.IsTransient(err))

	release()
	require.Zero(t, m.Count())
	require.True(t, m.TryAdd(1, 1))
	require.Equal(t, 1, m.Count())
}

func TestMapKeysValues(t *testing.T) {
	m := NewMap[string, int]()
	for i, k := range []string{"c", "a", "b"} {
		require.NoError(t, m.Add(k, i))
	}
	keys := m.Keys()
	sort.Strings(keys)
	require.Equal(t, []string{"a", "b", "c"}, keys)
	values := m.Values()
	sort.Ints(values)
	require.Equal(t, []int{0, 1, 2}, values)
}

func TestMapForEachSkipsRemovedKeys(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i*i)
	}
	seen := map[int]int{}
	m.ForEach(func(k, v int) {
		seen[k] = v
		// Remove every other key from inside the callback.
		for j := 0; j < 10; j++ {
			if j != k && j%2 == k%2 {
				m.Remove(j)
			}
		}
	})
	require.NotEmpty(t, seen)
	require.Less(t, len(seen), 10)
	for k, v := range seen {
		require.Equal(t, k*k, v)
	}
}

func TestMapForEachValue(t *testing.T) {
	m := NewMap[int, int]()
	for i := 1; i <= 5; i++ {
		m.Set(i, i)
	}
	sum := 0
	require.True(t, m.ForEachValue(func(_, v int) bool {
		sum += v
		return true
	}))
	require.Equal(t, 15, sum)

	visited := 0
	m.ForEachValue(func(_, _ int) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}

func TestMapClearAndDispose(t *testing.T) {
	m := NewMap[int, int](WithName("sessions"))
	m.Set(1, 1)
	require.True(t, m.Clear())
	require.Zero(t, m.Count())

	m.Set(2, 2)
	m.Dispose()
	m.Dispose()
	require.False(t, m.Contains(2))
	require.False(t, m.Set(3, 3))
	require.Zero(t, m.Count())
	err := m.Add(4, 4)
	require.True(t, errors.Is(err, api.ErrDisposed))
	require.Contains(t, err.Error(), "sessions")
}
