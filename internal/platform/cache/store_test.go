package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[int64, float64](0)
	var calls atomic.Int32

	loader := func(context.Context) (float64, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 0.8, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, _, err := store.GetOrLoad(context.Background(), 65, loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != 0.8 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, store.Len())
}

func TestStore_GetOrLoad_ReportsHitAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int64, float64](0)
	var calls atomic.Int32

	loader := func(context.Context) (float64, error) {
		calls.Add(1)
		return 0.4, nil
	}

	_, hit, err := store.GetOrLoad(context.Background(), 1, loader)
	require.NoError(t, err)
	assert.False(t, hit)

	v, hit, err := store.GetOrLoad(context.Background(), 1, loader)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 0.4, v)
	assert.EqualValues(t, 1, calls.Load())
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int64, float64](0)
	boom := errors.New("provider down")

	_, _, err := store.GetOrLoad(context.Background(), 9, func(context.Context) (float64, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := store.Get(context.Background(), 9)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore[string, int](0)
	clock := time.Date(2026, 10, 4, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.Set(context.Background(), "k", 3)
	clock = clock.Add(365 * 24 * time.Hour)

	v, ok := store.Get(context.Background(), "k")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStore_TTLExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string, int](time.Minute)
	clock := time.Date(2026, 10, 4, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.Set(context.Background(), "k", 3)
	clock = clock.Add(2 * time.Minute)

	_, ok := store.Get(context.Background(), "k")
	assert.False(t, ok)
}

var errUnexpectedValue = errors.New("unexpected loaded value")
