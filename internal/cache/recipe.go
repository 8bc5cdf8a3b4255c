package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecipeCache provides Redis-backed caching for parsed recipes. Entries are
// keyed by source URL and target language together, so the same post parsed
// for different languages never collides.
type RecipeCache struct {
	client *redis.Client
	prefix string
}

// NewRecipeCache creates a new recipe cache with the given Redis client.
// A nil client degrades to a no-op cache.
func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{
		client: client,
		prefix: "recipe:",
	}
}

func (c *RecipeCache) makeKey(url, language string) string {
	hash := sha256.Sum256([]byte(url + "|" + language))
	return fmt.Sprintf("%s%x", c.prefix, hash)
}

// Get retrieves a cached recipe payload by URL and language.
// Returns nil when the entry is absent or unreadable.
func (c *RecipeCache) Get(ctx context.Context, url, language string) (json.RawMessage, error) {
	if c.client == nil {
		return nil, nil
	}

	key := c.makeKey(url, language)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Warn("Redis cache get failed", "error", err)
		return nil, nil
	}

	return json.RawMessage(data), nil
}

// Set stores a recipe payload in the cache with the given TTL.
func (c *RecipeCache) Set(ctx context.Context, url, language string, payload json.RawMessage, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	key := c.makeKey(url, language)
	if err := c.client.Set(ctx, key, []byte(payload), ttl).Err(); err != nil {
		slog.Warn("Redis cache set failed", "error", err)
	}

	return nil
}

// Delete removes a recipe from the cache.
func (c *RecipeCache) Delete(ctx context.Context, url, language string) error {
	if c.client == nil {
		return nil
	}

	key := c.makeKey(url, language)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("Redis cache delete failed", "error", err)
	}

	return nil
}
