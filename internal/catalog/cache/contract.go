package cache

import (
	"context"
	"errors"
	"time"
)

// Client stores JSON-serializable values under string keys with a TTL.
type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
}

var (
	ErrNotExists   = errors.New("key not exists on cache storage")
	ErrInvalidType = errors.New("invalid type result")
)
