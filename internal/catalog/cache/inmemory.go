package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const cleanupInterval = time.Minute

// InMemoryClient is used when no redis address is configured.
type InMemoryClient[T any] struct {
	cache sync.Map
	done  chan struct{}
	once  sync.Once
}

type cachedValue struct {
	Value []byte
	ExpAt time.Time
}

func (cv *cachedValue) expired() bool {
	return !cv.ExpAt.IsZero() && cv.ExpAt.Before(time.Now())
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		done: make(chan struct{}),
	}

	go m.backgroundCleaner()
	return m
}

func (m *InMemoryClient[T]) Get(_ context.Context, key string) (result T, err error) {
	raw, found := m.cache.Load(key)
	if !found {
		return result, ErrNotExists
	}

	val, ok := raw.(*cachedValue)
	if !ok {
		return result, ErrInvalidType
	}

	if val.expired() {
		m.cache.Delete(key)
		return result, ErrNotExists
	}

	if err = json.Unmarshal(val.Value, &result); err != nil {
		return result, err
	}
	return result, nil
}

func (m *InMemoryClient[T]) Set(_ context.Context, key string, object T, ttl time.Duration) error {
	val, err := json.Marshal(object)
	if err != nil {
		return err
	}

	cv := &cachedValue{Value: val}
	if ttl > 0 {
		cv.ExpAt = time.Now().Add(ttl)
	}
	m.cache.Store(key, cv)
	return nil
}

func (m *InMemoryClient[T]) backgroundCleaner() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cache.Range(func(key, value any) bool {
				cv, ok := value.(*cachedValue)
				if !ok || cv.expired() {
					m.cache.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background cleaner.
func (m *InMemoryClient[T]) Close() {
	m.once.Do(func() { close(m.done) })
}
