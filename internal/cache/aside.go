package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: return the cached JSON value
// for key if present, otherwise call loader, store its result under key
// with the given TTL and return it. dest must be a pointer. When Redis is
// unavailable the loader result is returned uncached.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			var cached T
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
			// Corrupt entry, drop it and fall through to the loader.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
			// Redis trouble is non-fatal, serve from the source.
			_ = err
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return zero, err
	}

	if client != nil {
		if raw, jsonErr := json.Marshal(value); jsonErr == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}

	return value, nil
}
