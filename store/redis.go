package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	// Key is the Redis list holding the records. Default: "store:records".
	Key string
}

func (c RedisConfig) parse() RedisConfig {
	if c.Key == "" {
		c.Key = "store:records"
	}
	return c
}

// Redis is a Store backed by a Redis list. Records are JSON-encoded and
// appended with RPUSH, which is atomic server-side, so concurrent Adds from
// multiple processes keep a consistent insertion order.
type Redis[T any] struct {
	client redis.Cmdable
	key    string
}

// NewRedis creates a Redis store on the given client.
// Cmdable accepts both single-node and cluster clients.
func NewRedis[T any](client redis.Cmdable, cfg RedisConfig) *Redis[T] {
	cfg = cfg.parse()
	return &Redis[T]{client: client, key: cfg.Key}
}

// Add appends item to the list. Connectivity failures wrap ErrUnavailable.
func (s *Redis[T]) Add(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// List reads the full list and decodes each record.
func (s *Redis[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	out := make([]T, 0, len(vals))
	for _, v := range vals {
		var item T
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			return nil, fmt.Errorf("store: decode record: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

var _ Store[int] = (*Redis[int])(nil)
