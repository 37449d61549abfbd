package kvstore

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore stores values without expiry. prefix namespaces the keys so
// several devices can share one Redis.
func NewRedisStore(rdb *redis.Client, prefix string) Store {
	return &redisStore{rdb: rdb, prefix: prefix}
}

func (s *redisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore keeps values in process memory. Used when no Redis is
// configured and in tests.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
