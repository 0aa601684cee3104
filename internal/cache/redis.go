package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cinelabs/cinescope/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache stores derived movie views (trending, top rated,
// recommendations) in Redis with a TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func TrendingKey(limit int) string {
	return fmt.Sprintf("views:trending:limit:%d", limit)
}

func TopRatedKey(limit int) string {
	return fmt.Sprintf("views:toprated:limit:%d", limit)
}

func RecommendationsKey(movieID int64, limit int) string {
	return fmt.Sprintf("views:recs:movie:%d:limit:%d", movieID, limit)
}

// GetView returns the cached movie list for key. The second return
// value reports whether the key was present.
func (c *Cache) GetView(ctx context.Context, key string) ([]domain.Movie, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get view %s: %w", key, err)
	}

	var movies []domain.Movie
	if err := json.Unmarshal([]byte(val), &movies); err != nil {
		return nil, false, fmt.Errorf("unmarshal view %s: %w", key, err)
	}
	return movies, true, nil
}

// SetView stores a movie list under key with the configured TTL.
func (c *Cache) SetView(ctx context.Context, key string, movies []domain.Movie) error {
	val, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("marshal view %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set view %s: %w", key, err)
	}
	return nil
}

// ClearViews drops every cached view, used after a catalog reload.
func (c *Cache) ClearViews(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "views:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
