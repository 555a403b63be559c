package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store counts requests per key inside a fixed window. Allow reports
// whether the request under key may proceed, and when it may not, how
// long the caller should wait before trying again.
//
// The store is injected into the middleware so the in-process map can
// be swapped for a shared Redis backend without touching call sites.
type Store interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

type entry struct {
	count int
	start time.Time
}

// MemoryStore is a mutex-guarded fixed-window counter, one window per
// key. Windows are pruned lazily on access.
type MemoryStore struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]entry

	now func() time.Time // overridable in tests
}

// NewMemoryStore returns a store allowing limit requests per window.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		window:  window,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.start) > s.window {
		s.entries[key] = entry{count: 1, start: now}
		return true, 0, nil
	}
	if e.count >= s.limit {
		return false, e.start.Add(s.window).Sub(now), nil
	}
	e.count++
	s.entries[key] = e
	return true, 0, nil
}

// RedisStore is a fixed-window counter backed by Redis INCR, suitable
// when multiple instances must share one limit.
type RedisStore struct {
	Rdb    *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
}

// NewRedisStore returns a store allowing limit requests per window,
// keyed under "ratelimit:".
func NewRedisStore(rdb *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{Rdb: rdb, Limit: limit, Window: window, Prefix: "ratelimit:"}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := s.Prefix + key
	count, err := s.Rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := s.Rdb.Expire(ctx, k, s.Window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count > int64(s.Limit) {
		ttl, err := s.Rdb.TTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = s.Window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
