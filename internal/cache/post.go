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

// CachedPost represents a scraped social media post.
type CachedPost struct {
	ID            string `json:"id"`
	Platform      string `json:"platform"`
	Caption       string `json:"caption"`
	ImageURL      string `json:"image_url"`
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration"`
	ThumbnailURL  string `json:"thumbnail_url"`
	OwnerUsername string `json:"owner_username"`
	OwnerName     string `json:"owner_name"`
	OwnerAvatar   string `json:"owner_avatar"`
	OwnerID       string `json:"owner_id"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	PostedAt      string `json:"posted_at"`
}

// PostCache provides Redis-backed caching for scraped post data so that
// repeated parse requests for the same URL skip the scraper entirely.
type PostCache struct {
	client *redis.Client
	prefix string
}

// NewPostCache creates a new post cache with the given Redis client.
// A nil client degrades to a no-op cache.
func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{
		client: client,
		prefix: "post:",
	}
}

// makeKey creates a cache key from a URL by hashing it.
func (c *PostCache) makeKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s%x", c.prefix, hash)
}

// Get retrieves a cached post by URL.
func (c *PostCache) Get(ctx context.Context, url string) (*CachedPost, error) {
	if c.client == nil {
		return nil, nil
	}

	key := c.makeKey(url)
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Warn("Redis cache get failed", "error", err)
		return nil, nil
	}

	var post CachedPost
	if err := json.Unmarshal([]byte(data), &post); err != nil {
		slog.Warn("Failed to unmarshal cached post", "error", err)
		return nil, nil
	}

	return &post, nil
}

// Set stores a post in the cache with the given TTL.
func (c *PostCache) Set(ctx context.Context, url string, post *CachedPost, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(post)
	if err != nil {
		return err
	}

	key := c.makeKey(url)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("Redis cache set failed", "error", err)
	}

	return nil
}

// Delete removes a post from the cache.
func (c *PostCache) Delete(ctx context.Context, url string) error {
	if c.client == nil {
		return nil
	}

	key := c.makeKey(url)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("Redis cache delete failed", "error", err)
	}

	return nil
}
