package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// fallbackPrefix namespaces last-known-good entries so they never collide
// with live ones.
const fallbackPrefix = "lkg:"

// RedisStore backs the resilient cache with redis. Primary entries carry a
// redis TTL; fallback entries are written without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) GetFallback(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, fallbackPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) SetFallback(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, fallbackPrefix+key, value, 0).Err()
}

var _ Store = (*RedisStore)(nil)
