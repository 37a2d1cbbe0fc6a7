package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/internmatch/portal/pkg/redis"
)

const credentialKeyPrefix = "credential:"

// RedisStore persists credentials in Redis so sessions survive portal
// restarts. Each credential carries a TTL; a session older than the TTL
// simply reads back as absent, which the gate turns into a login redirect.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed credential store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) key(key string) string {
	return credentialKeyPrefix + key
}

// Set stores the credential, overwriting any previous value
func (s *RedisStore) Set(ctx context.Context, key, credential string) error {
	if err := s.client.Set(ctx, s.key(key), credential, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Get returns the stored credential, or "" if absent
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return val, nil
}

// Clear removes the credential
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
