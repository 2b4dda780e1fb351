package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKey    = "auth_token"
	identityKey = "auth_user"
)

// RedisStorage keeps the session as two Redis keys written and removed together.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a Redis-backed session storage. Keys are prefixed with prefix.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStorage) key(name string) string {
	return r.prefix + name
}

// Save writes the token and identity in one transaction.
func (r *RedisStorage) Save(ctx context.Context, token, identity string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(tokenKey), token, 0)
		pipe.Set(ctx, r.key(identityKey), identity, 0)

		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to save session: %w", err)
	}

	return nil
}

// Load reads the token and identity. Missing keys yield empty strings.
func (r *RedisStorage) Load(ctx context.Context) (string, string, error) {
	values, err := r.client.MGet(ctx, r.key(tokenKey), r.key(identityKey)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", "", fmt.Errorf("unable to load session: %w", err)
	}

	var out [2]string
	for i, v := range values {
		if s, ok := v.(string); ok && i < len(out) {
			out[i] = s
		}
	}

	return out[0], out[1], nil
}

// Clear deletes both keys.
func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(tokenKey), r.key(identityKey)).Err(); err != nil {
		return fmt.Errorf("unable to clear session: %w", err)
	}

	return nil
}
