package collections

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/momentics/hioload-conc/api"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStackLIFO(t *testing.T) {
	for name, opt := range strategyOptions {
		t.Run(name, func(t *testing.T) {
			s := NewStack[int](opt)
			require.True(t, s.IsEmpty())
			s.Push(1)
			s.Push(2)
			s.Push(3)
			require.Equal(t, 3, s.Count())

			top, ok := s.TryPeek()
			require.True(t, ok)
			require.Equal(t, 3, top)

			for _, want := range []int{3, 2, 1} {
				got, err := s.Pop()
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
			_, err := s.Pop()
			require.True(t, errors.Is(err, api.ErrEmptyContainer))
			_, ok = s.TryPop()
			require.False(t, ok)
		})
	}
}

func TestStackPushRange(t *testing.T) {
	s := NewStack[string]()
	s.PushRange("a", "b", "c")
	require.Equal(t, []string{"c", "b", "a"}, s.ToSlice())
}

func TestStackContainsRemove(t *testing.T) {
	s := NewStack[int]()
	s.PushRange(1, 2, 3, 2)
	require.True(t, s.Contains(3, intEq))
	require.False(t, s.Contains(9, intEq))

	require.True(t, s.Remove(2, intEq))
	require.Equal(t, []int{3, 2, 1}, s.ToSlice())
	require.True(t, s.Remove(1, intEq))
	require.False(t, s.Remove(1, intEq))
	require.Equal(t, []int{3, 2}, s.ToSlice())
	require.Equal(t, 2, s.Count())
}

func TestStackForEachStops(t *testing.T) {
	s := NewStack[int]()
	s.PushRange(1, 2, 3, 4)
	var seen []int
	require.True(t, s.ForEach(func(v int) bool {
		seen = append(seen, v)
		return v != 3
	}))
	require.Equal(t, []int{4, 3}, seen)
}

func TestStackConcurrentPushPop(t *testing.T) {
	s := NewStack[int]()
	const workers, per = 8, 500
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < per; i++ {
				s.Push(i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, workers*per, s.Count())

	popped := make(chan int, workers*per)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				v, ok := s.TryPop()
				if !ok {
					return nil
				}
				popped <- v
			}
		})
	}
	require.NoError(t, g.Wait())
	close(popped)
	require.Len(t, popped, workers*per)
	require.True(t, s.IsEmpty())
}

func TestStackNodeReuse(t *testing.T) {
	s := NewStack[int]()
	for i := 0; i < 2*nodeCacheLimit; i++ {
		s.Push(i)
	}
	for !s.IsEmpty() {
		s.TryPop()
	}
	require.Equal(t, nodeCacheLimit, s.cache.n)
	s.Push(42)
	require.Equal(t, nodeCacheLimit-1, s.cache.n)
	v, _ := s.TryPeek()
	require.Equal(t, 42, v)
}

func TestStackClearDispose(t *testing.T) {
	s := NewStack[int]()
	s.PushRange(1, 2)
	require.True(t, s.Clear())
	require.True(t, s.IsEmpty())
	s.Push(3)
	s.Dispose()
	require.Zero(t, s.Count())
	require.False(t, s.Push(4))
	_, err := s.Pop()
	require.True(t, errors.Is(err, api.ErrDisposed))
}
