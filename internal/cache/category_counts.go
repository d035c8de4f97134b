// Package cache keeps pre-maintained per-category thread counts in Redis so
// category-filtered listings can report totals without a COUNT query.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talkboard/talkboard/internal/domain"
)

const countTTL = 24 * time.Hour

type CategoryCounts struct {
	client *redis.Client
}

func New(redisURL string) (*CategoryCounts, error) {
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
	return &CategoryCounts{client: client}, nil
}

func NewWithClient(client *redis.Client) *CategoryCounts {
	return &CategoryCounts{client: client}
}

func (c *CategoryCounts) key(category domain.CategoryId) string {
	return fmt.Sprintf("category_threads:%d", category)
}

// Get returns the cached count and whether the cache held a value. Any Redis
// error reads as a miss: the caller falls back to a real count.
func (c *CategoryCounts) Get(ctx context.Context, category domain.CategoryId) (int, bool) {
	n, err := c.client.Get(ctx, c.key(category)).Int()
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set stores a freshly computed count, typically after a cache miss.
func (c *CategoryCounts) Set(ctx context.Context, category domain.CategoryId, count int) error {
	return c.client.Set(ctx, c.key(category), count, countTTL).Err()
}

// Incr bumps the cached count when a thread is created. Missing keys are
// left alone so the next listing seeds them from a real count.
func (c *CategoryCounts) Incr(ctx context.Context, category domain.CategoryId) error {
	return c.adjust(ctx, category, 1)
}

// Decr lowers the cached count when a thread is destroyed.
func (c *CategoryCounts) Decr(ctx context.Context, category domain.CategoryId) error {
	return c.adjust(ctx, category, -1)
}

func (c *CategoryCounts) adjust(ctx context.Context, category domain.CategoryId, delta int64) error {
	key := c.key(category)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	return c.client.IncrBy(ctx, key, delta).Err()
}

// Invalidate drops a cached count entirely.
func (c *CategoryCounts) Invalidate(ctx context.Context, category domain.CategoryId) error {
	return c.client.Del(ctx, c.key(category)).Err()
}

func (c *CategoryCounts) Close() error {
	return c.client.Close()
}
