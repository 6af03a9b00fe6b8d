// Package viewcache provides an optional Redis-backed cache for assembled
// views. Cached entries are keyed per view and per viewer, since assembled
// ideas carry viewer-specific like state. A nil *Store is valid and behaves
// as a cache that always misses.
package viewcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ideaboard/api/internal/view"
)

const keyPrefix = "view:"

// Store caches assembled views in Redis with a fixed TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a ready Store.
func New(redisURL string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// NewWithClient creates a Store from an existing Redis client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// key builds the Redis key for a view key and viewer. Anonymous viewers
// share the "anon" variant.
func key(k view.Key, viewer string) string {
	if viewer == "" {
		viewer = "anon"
	}
	return keyPrefix + string(k) + ":" + viewer
}

// Get loads a cached view into dest. Returns false on a miss (including
// a nil Store).
func (s *Store) Get(ctx context.Context, k view.Key, viewer string, dest any) (bool, error) {
	if s == nil {
		return false, nil
	}

	data, err := s.client.Get(ctx, key(k, viewer)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("viewcache get: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("viewcache unmarshal: %w", err)
	}

	return true, nil
}

// Set stores an assembled view for a viewer. A no-op on a nil Store or a
// non-positive TTL.
func (s *Store) Set(ctx context.Context, k view.Key, viewer string, value any) error {
	if s == nil || s.ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("viewcache marshal: %w", err)
	}

	if err := s.client.Set(ctx, key(k, viewer), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("viewcache set: %w", err)
	}

	return nil
}

// Invalidate drops every viewer variant of the given view keys.
func (s *Store) Invalidate(ctx context.Context, keys ...view.Key) error {
	if s == nil {
		return nil
	}

	for _, k := range keys {
		pattern := keyPrefix + string(k) + ":*"
		iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("viewcache invalidate %s: %w", k, err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("viewcache scan %s: %w", k, err)
		}
	}

	return nil
}

// Ping checks Redis reachability. A nil Store is always healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
