// Package redis implements kv.Store on Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by the store.
const DefaultKeyPrefix = "extlink:"

// Store handles Redis operations for the persisted records.
// Values never expire: the records are user configuration, not cache.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// NewStore creates a new Redis-backed kv store.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Key returns the Redis key for a logical record key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key, def string) (string, error) {
	v, err := s.client.Get(ctx, s.Key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return def, nil
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
