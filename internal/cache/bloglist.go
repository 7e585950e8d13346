package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bloglist/bloglist/internal/model"
)

const (
	// blogListKey is the Redis key holding the serialized blog list.
	blogListKey = "blogs:list"

	// BlogListTTL is the TTL for the cached blog list.
	// Short on purpose: the list is the read hot path but staleness past a
	// few seconds is visible in the UI.
	BlogListTTL = 10 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetBlogList retrieves the cached blog list.
// Returns ErrCacheMiss if not found or unreadable.
func (c *Cache) GetBlogList(ctx context.Context) ([]*model.Blog, error) {
	data, err := c.client.Get(ctx, blogListKey).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var blogs []*model.Blog
	if err := json.Unmarshal(data, &blogs); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return blogs, nil
}

// SetBlogList caches the blog list.
func (c *Cache) SetBlogList(ctx context.Context, blogs []*model.Blog) error {
	data, err := json.Marshal(blogs)
	if err != nil {
		return fmt.Errorf("marshal blog list: %w", err)
	}

	return c.client.Set(ctx, blogListKey, data, BlogListTTL).Err()
}

// InvalidateBlogList drops the cached blog list.
// Called after any blog mutation so reads never serve a deleted or stale entry
// beyond the TTL window.
func (c *Cache) InvalidateBlogList(ctx context.Context) error {
	return c.client.Del(ctx, blogListKey).Err()
}
