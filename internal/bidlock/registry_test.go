package bidlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_AcquireRelease(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Acquire("item1"), "first acquire should succeed")
	require.False(t, r.Acquire("item1"), "second acquire should fail while locked")
	require.True(t, r.Locked("item1"))

	// Another item is independent.
	require.True(t, r.Acquire("item2"))

	r.Release("item1")
	require.False(t, r.Locked("item1"))
	require.True(t, r.Acquire("item1"), "acquire should succeed after release")
}

func TestRegistry_ReleaseIdempotent(t *testing.T) {
	r := NewRegistry()

	// Releasing an item that was never locked must not error or lock it.
	r.Release("item1")
	require.False(t, r.Locked("item1"))

	require.True(t, r.Acquire("item1"))
	r.Release("item1")
	r.Release("item1")
	require.False(t, r.Locked("item1"))
	require.True(t, r.Acquire("item1"))
}

func TestRegistry_ConcurrentAcquireExactlyOneWinner(t *testing.T) {
	r := NewRegistry()

	const goroutines = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Acquire("item1") {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, winners, "exactly one concurrent acquire may win")
	require.True(t, r.Locked("item1"))
}
