package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is an in-process cache with absolute per-entry expiration.
// Computation for a missing key is coalesced per key: concurrent callers
// share one in-flight factory call instead of hitting upstream twice.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with an absolute expiry of now+ttl.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Del removes key from the store.
func (s *Store) Del(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or runs factory and caches
// its result for ttl. The factory runs at most once per key at a time;
// callers that arrive while a computation is in flight wait for and share
// its result. Expired entries are recomputed on access, there is no
// background refresh.
//
// The ttl callback receives the computed value so that the entry lifetime
// can depend on the value itself (e.g. a token's own expiry).
func (s *Store) GetOrCompute(ctx context.Context, key string, ttl func(value any) time.Duration, factory func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have just populated it.
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v, ttl(v))
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FixedTTL adapts a constant duration to the ttl callback of GetOrCompute.
func FixedTTL(d time.Duration) func(any) time.Duration {
	return func(any) time.Duration { return d }
}

// GetOrComputeTyped wraps Store.GetOrCompute with a typed factory so call
// sites don't repeat the type assertion.
func GetOrComputeTyped[T any](ctx context.Context, s *Store, key string, ttl time.Duration, factory func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.GetOrCompute(ctx, key, FixedTTL(ttl), func(ctx context.Context) (any, error) {
		return factory(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
