package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient[T any] struct {
	redis *redis.Client
}

func NewRedisClient[T any](rdb *redis.Client) *RedisClient[T] {
	return &RedisClient[T]{redis: rdb}
}

func (r *RedisClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, ErrNotExists
		}
		return result, fmt.Errorf("redis get %q: %w", key, err)
	}

	if err = json.Unmarshal([]byte(val), &result); err != nil {
		return result, fmt.Errorf("decode %q: %w", key, err)
	}
	return result, nil
}

func (r *RedisClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	val, err := json.Marshal(object)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	if err := r.redis.Set(ctx, key, string(val), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisClient[T]) Health(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}
