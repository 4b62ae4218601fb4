// Package cache holds analysis results in Redis or in process memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openmohaa/coach-api/internal/models"
)

const keyPrefix = "analysis:"

func key(matchID string) string {
	return keyPrefix + matchID
}

// RedisClient defines the subset of the Redis client the cache uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache stores analyses as JSON strings with a TTL.
type RedisCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisCache(client RedisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, matchID string) (*models.AnalysisResult, bool, error) {
	data, err := c.client.Get(ctx, key(matchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, result *models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := c.client.Set(ctx, key(result.MatchID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, matchIDs ...string) error {
	if len(matchIDs) == 0 {
		return nil
	}
	keys := make([]string, len(matchIDs))
	for i, id := range matchIDs {
		keys[i] = key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// MemoryCache is the in-process fallback when Redis is not configured.
// Entries do not expire; they are removed by Delete.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.AnalysisResult
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*models.AnalysisResult)}
}

func (c *MemoryCache) Get(ctx context.Context, matchID string) (*models.AnalysisResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[matchID]
	return result, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, result *models.AnalysisResult) error {
	c.mu.Lock()
	c.entries[result.MatchID] = result
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, matchIDs ...string) error {
	c.mu.Lock()
	for _, id := range matchIDs {
		delete(c.entries, id)
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
