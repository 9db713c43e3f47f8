package factorial

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResultCache_StoreIsIdempotent(t *testing.T) {
	c := NewResultCache()

	_, ok := c.Load(5)
	require.False(t, ok)

	require.True(t, c.Store(5, big.NewInt(120)))
	require.False(t, c.Store(5, big.NewInt(-1)), "second store must not overwrite")

	got, ok := c.Load(5)
	require.True(t, ok)
	require.Equal(t, "120", got.String())
	require.Equal(t, 1, c.Len())
}

func TestResultCache_ClaimOnce(t *testing.T) {
	c := NewResultCache()

	var claimed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Claim(7) {
				claimed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, claimed.Load())
	require.Zero(t, c.Len(), "claims do not store values")
}

func TestResultCache_AwaitStoredLater(t *testing.T) {
	c := NewResultCache()
	terminated := make(chan struct{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Store(3, big.NewInt(6))
	}()

	got, err := c.Await(context.Background(), 3, terminated)
	require.NoError(t, err)
	require.Equal(t, "6", got.String())
}

func TestResultCache_AwaitAlreadyStoredAfterTermination(t *testing.T) {
	c := NewResultCache()
	c.Store(4, big.NewInt(24))
	terminated := make(chan struct{})
	close(terminated)

	got, err := c.Await(context.Background(), 4, terminated)
	require.NoError(t, err)
	require.Equal(t, "24", got.String())
}

func TestResultCache_AwaitLost(t *testing.T) {
	c := NewResultCache()
	terminated := make(chan struct{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(terminated)
	}()

	got, err := c.Await(context.Background(), 9, terminated)
	require.Nil(t, got)
	require.ErrorIs(t, err, ErrResultLost)
}

func TestResultCache_AwaitCancelled(t *testing.T) {
	c := NewResultCache()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Await(ctx, 1, make(chan struct{}))
	require.ErrorIs(t, err, ErrCancelled)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResultCache_ConcurrentStoreSingleWinner(t *testing.T) {
	c := NewResultCache()

	var stored atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if c.Store(10, big.NewInt(int64(i))) {
				stored.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, stored.Load())
	first, _ := c.Load(10)
	for i := 0; i < 5; i++ {
		again, _ := c.Load(10)
		require.Same(t, first, again)
	}
}
