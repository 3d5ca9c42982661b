package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCompute_FactoryRunsOncePerKey(t *testing.T) {
	store := NewStore()
	calls := 0

	factory := func(ctx context.Context) (any, error) {
		calls++
		return "value", nil
	}

	v, err := store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
	assert.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
	assert.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestGetOrCompute_DistinctKeysComputeIndependently(t *testing.T) {
	store := NewStore()
	calls := 0

	factory := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	a, _ := store.GetOrCompute(context.Background(), "a", FixedTTL(time.Minute), factory)
	b, _ := store.GetOrCompute(context.Background(), "b", FixedTTL(time.Minute), factory)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestGetOrCompute_ExpiredEntryIsRecomputed(t *testing.T) {
	store := NewStore()
	current := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	calls := 0
	factory := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, _ := store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
	assert.Equal(t, 1, v)

	// Still fresh just before the deadline.
	current = current.Add(59 * time.Second)
	v, _ = store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
	assert.Equal(t, 1, v)

	// Past the deadline the factory runs again.
	current = current.Add(2 * time.Second)
	v, _ = store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ErrorsAreNotCached(t *testing.T) {
	store := NewStore()
	calls := 0

	failing := func(ctx context.Context) (any, error) {
		calls++
		return nil, errors.New("upstream unavailable")
	}

	_, err := store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), failing)
	assert.Error(t, err)

	v, err := store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute),
		func(ctx context.Context) (any, error) {
			calls++
			return "recovered", nil
		})
	assert.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ConcurrentCallersShareOneFlight(t *testing.T) {
	store := NewStore()
	var calls atomic.Int32
	release := make(chan struct{})

	factory := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.GetOrCompute(context.Background(), "k", FixedTTL(time.Minute), factory)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every caller reach the flight before the factory finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestGetOrCompute_TTLDerivedFromValue(t *testing.T) {
	store := NewStore()
	current := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	type lease struct {
		token string
		ttl   time.Duration
	}

	calls := 0
	factory := func(ctx context.Context) (any, error) {
		calls++
		return lease{token: "t1", ttl: 10 * time.Second}, nil
	}
	ttl := func(v any) time.Duration { return v.(lease).ttl }

	_, err := store.GetOrCompute(context.Background(), "token", ttl, factory)
	assert.NoError(t, err)

	current = current.Add(9 * time.Second)
	_, _ = store.GetOrCompute(context.Background(), "token", ttl, factory)
	assert.Equal(t, 1, calls)

	current = current.Add(2 * time.Second)
	_, _ = store.GetOrCompute(context.Background(), "token", ttl, factory)
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeTyped_ReturnsConcreteType(t *testing.T) {
	store := NewStore()

	got, err := GetOrComputeTyped(context.Background(), store, "k", time.Minute,
		func(ctx context.Context) ([]string, error) {
			return []string{"MAD", "LIS"}, nil
		})

	assert.NoError(t, err)
	assert.Equal(t, []string{"MAD", "LIS"}, got)
}

func TestGetOrComputeTyped_ZeroValueOnError(t *testing.T) {
	store := NewStore()

	got, err := GetOrComputeTyped(context.Background(), store, "k", time.Minute,
		func(ctx context.Context) ([]string, error) {
			return nil, errors.New("boom")
		})

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestSetGetDel(t *testing.T) {
	store := NewStore()

	store.Set("k", 42, time.Minute)
	v, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	store.Del("k")
	_, ok = store.Get("k")
	assert.False(t, ok)
}
