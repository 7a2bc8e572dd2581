// Package cache provides a redis-backed implementation of the group
// listing cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"crewup/internal/domain"
)

const groupsKey = "groups:all"

// GroupCache caches the full newest-first group listing in redis under
// a single key with a short TTL.
type GroupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGroupCache creates a GroupCache backed by the redis instance at
// addr. ttl bounds how stale a cached listing may get.
func NewGroupCache(addr string, ttl time.Duration) *GroupCache {
	return &GroupCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// Ping verifies the redis connection.
func (c *GroupCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *GroupCache) Close() error {
	return c.rdb.Close()
}

func (c *GroupCache) GetGroups(ctx context.Context) ([]*domain.Group, bool, error) {
	payload, err := c.rdb.Get(ctx, groupsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var groups []*domain.Group
	if err := json.Unmarshal([]byte(payload), &groups); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, false, nil
	}
	return groups, true, nil
}

func (c *GroupCache) SetGroups(ctx context.Context, groups []*domain.Group) error {
	payload, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, groupsKey, payload, c.ttl).Err()
}

func (c *GroupCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, groupsKey).Err()
}

var _ domain.GroupCache = (*GroupCache)(nil)
