package collections

import (
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/momentics/hioload-conc/api"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestOrderedMapBasics(t *testing.T) {
	m := NewOrderedMap[int, string]()
	require.NoError(t, m.Add(2, "two"))
	require.True(t, errors.Is(m.Add(2, "again"), api.ErrDuplicateKey))
	require.True(t, m.TryAdd(1, "one"))
	require.False(t, m.TryAdd(1, "uno"))
	require.True(t, m.Set(3, "three"))
	require.True(t, m.Set(3, "tres"))

	require.Equal(t, 3, m.Count())
	require.Equal(t, "tres", m.Get(3))
	require.Equal(t, "", m.Get(9))
	require.True(t, m.Contains(1))

	v, ok := m.TryRemove(2)
	require.True(t, ok)
	require.Equal(t, "two", v)
	require.False(t, m.Remove(2))
	require.Equal(t, []int{1, 3}, m.Keys())
	require.Equal(t, []string{"one", "tres"}, m.Values())
}

func TestOrderedMapMinMax(t *testing.T) {
	m := NewOrderedMap[string, int]()
	_, _, ok := m.Min()
	require.False(t, ok)

	for i, k := range []string{"m", "c", "x", "a"} {
		m.Set(k, i)
	}
	k, v, ok := m.Min()
	require.True(t, ok)
	require.Equal(t, "a", k)
	require.Equal(t, 3, v)
	k, _, ok = m.Max()
	require.True(t, ok)
	require.Equal(t, "x", k)
}

func TestOrderedMapRanges(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for i := 0; i < 20; i += 2 {
		m.Set(i, i*10)
	}

	var from []int
	m.Ascend(7, func(k, _ int) bool {
		from = append(from, k)
		return k < 12
	})
	require.Equal(t, []int{8, 10, 12}, from)

	var window []int
	m.AscendRange(4, 10, func(k, v int) bool {
		require.Equal(t, k*10, v)
		window = append(window, k)
		return true
	})
	require.Equal(t, []int{4, 6, 8}, window)
}

func TestOrderedMapForEachSnapshot(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for i := 0; i < 6; i++ {
		m.Set(i, i)
	}
	var seen []int
	m.ForEach(func(k, _ int) {
		seen = append(seen, k)
		m.Remove(k + 1)
	})
	require.Equal(t, []int{0, 2, 4}, seen)
}

func TestOrderedMapConcurrent(t *testing.T) {
	m := NewOrderedMap[int, int]()
	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 250; i++ {
				m.Set(w*250+i, i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1000, m.Count())
	keys := m.Keys()
	require.True(t, sort.IntsAreSorted(keys))
}

func TestOrderedMapDispose(t *testing.T) {
	m := NewOrderedMap[int, int]()
	m.Set(1, 1)
	require.True(t, m.Clear())
	require.Zero(t, m.Count())
	m.Dispose()
	require.False(t, m.Set(1, 1))
	require.True(t, errors.Is(m.Add(2, 2), api.ErrDisposed))
}

func TestOrderedMapKeysSorted(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("keys come back sorted and unique", prop.ForAll(
		func(keys []int) bool {
			m := NewOrderedMap[int, struct{}]()
			uniq := map[int]struct{}{}
			for _, k := range keys {
				m.Set(k, struct{}{})
				uniq[k] = struct{}{}
			}
			got := m.Keys()
			return len(got) == len(uniq) && sort.IntsAreSorted(got)
		},
		gen.SliceOf(gen.IntRange(-50, 50)),
	))
	properties.TestingRun(t)
}
