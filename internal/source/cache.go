package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"replyloop.app/engine/internal/model"
)

// ErrCacheMiss is returned when no cached posts exist for a handle.
var ErrCacheMiss = errors.New("cache miss")

// PostCache stores recently fetched posts per handle. Entries go stale on
// their own via TTL; a stale-but-present entry is served as-is, which is the
// accepted staleness/latency trade-off of the fetch path.
type PostCache interface {
	Get(ctx context.Context, handle string) ([]model.Post, error)
	Set(ctx context.Context, handle string, posts []model.Post) error
}

type redisPostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPostCache creates a PostCache backed by redis with the given TTL.
func NewRedisPostCache(client *redis.Client, ttl time.Duration) PostCache {
	return &redisPostCache{client: client, ttl: ttl}
}

func cacheKey(handle string) string {
	return "posts:" + handle
}

func (c *redisPostCache) Get(ctx context.Context, handle string) ([]model.Post, error) {
	raw, err := c.client.Get(ctx, cacheKey(handle)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get (handle=%s): %w", handle, err)
	}

	var posts []model.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("decoding cached posts (handle=%s): %w", handle, err)
	}

	return posts, nil
}

func (c *redisPostCache) Set(ctx context.Context, handle string, posts []model.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding posts for cache (handle=%s): %w", handle, err)
	}

	if err := c.client.Set(ctx, cacheKey(handle), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set (handle=%s): %w", handle, err)
	}

	return nil
}
