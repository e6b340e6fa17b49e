package cache

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-memory keyed cache. A zero ttl keeps entries until the
// store itself is discarded.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	flight  resilience.SingleFlight[K, V]
	now     func() time.Time
}

func NewStore[K comparable, V any](ttl time.Duration) *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[K, V]) Get(_ context.Context, key K) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		var zero V
		return zero, false
	}

	return e.value, true
}

func (s *Store[K, V]) Set(_ context.Context, key K, value V) {
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once per key,
// even when several callers miss concurrently. Loader errors are not cached.
func (s *Store[K, V]) GetOrLoad(ctx context.Context, key K, loader func(context.Context) (V, error)) (V, bool, error) {
	if loader == nil {
		var zero V
		return zero, false, crerr.New("loader is required")
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, true, nil
	}

	hit := false
	value, err, _ := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			hit = true
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return loaded, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	return value, hit, nil
}
