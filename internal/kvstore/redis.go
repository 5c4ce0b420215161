package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under prefix+key, without expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a RedisStore on top of an existing client
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get returns the stored value. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %q from redis: %w", key, err)
	}
	return value, true, nil
}

// Set writes the value with a single SET, so a rejected write leaves the old value.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		// maxmemory rejections come back as "OOM command not allowed ..."
		if strings.HasPrefix(err.Error(), "OOM") {
			return fmt.Errorf("failed to set %q in redis: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to set %q in redis: %w", key, err)
	}
	return nil
}
