package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/bug-tracker/internal/domain"
)

// ErrCacheMiss signals the requested bug is not cached.
var ErrCacheMiss = errors.New("bug cache miss")

// BugCache is a read-through cache for single-bug lookups. All methods degrade
// to a miss or no-op when Redis is unreachable so the store stays authoritative.
type BugCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewBugCache wraps the Redis handle.
func NewBugCache(r *Redis, ttl time.Duration) *BugCache {
	return &BugCache{redis: r, ttl: ttl}
}

func (c *BugCache) key(id string) string {
	return "bug:" + id
}

// Get returns the cached bug or ErrCacheMiss.
func (c *BugCache) Get(ctx context.Context, id string) (*domain.Bug, error) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, ErrCacheMiss
	}
	payload, err := c.redis.Client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, ErrCacheMiss
	}
	var bug domain.Bug
	if err := json.Unmarshal(payload, &bug); err != nil {
		return nil, ErrCacheMiss
	}
	return &bug, nil
}

// Set stores the bug under its id.
func (c *BugCache) Set(ctx context.Context, bug *domain.Bug) {
	if c == nil || c.redis == nil || c.redis.Client == nil || bug == nil {
		return
	}
	payload, err := json.Marshal(bug)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, c.key(bug.ID), payload, c.ttl).Err()
}

// Invalidate drops the cached entry after a mutation.
func (c *BugCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, c.key(id)).Err()
}
