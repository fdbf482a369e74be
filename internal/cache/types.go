// types.go provides a Valkey-backed cache of persisted content-type
// rows. The registry reads through it on cold materialization so a
// request burst does not hammer the config table; invalidation happens
// on every acknowledged write, the TTL is only a backstop.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidum2/seo-content-structure-sub000/internal/models"
)

const (
	// typeKeyPrefix is the Valkey key prefix for content-type rows.
	typeKeyPrefix = "ctype:"

	// DefaultTypeTTL is how long a cached row stays without writes.
	DefaultTypeTTL = 10 * time.Minute
)

// TypeCache caches raw content-type rows in Valkey. Every failure
// degrades to a miss with a warning: caching is never load-bearing.
type TypeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTypeCache creates a row cache backed by the given Valkey client.
func NewTypeCache(client *redis.Client, ttl time.Duration) *TypeCache {
	if ttl == 0 {
		ttl = DefaultTypeTTL
	}
	return &TypeCache{client: client, ttl: ttl}
}

// Get retrieves a cached row. The second result is false on miss.
func (tc *TypeCache) Get(ctx context.Context, key string) (*models.ContentTypeRow, bool) {
	val, err := tc.client.Get(ctx, typeKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("type cache get error", "key", key, "error", err)
		return nil, false
	}
	var row models.ContentTypeRow
	if err := json.Unmarshal(val, &row); err != nil {
		slog.Warn("type cache entry undecodable", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("type cache hit", "key", key)
	return &row, true
}

// Set stores a row with the configured TTL.
func (tc *TypeCache) Set(ctx context.Context, key string, row *models.ContentTypeRow) {
	encoded, err := json.Marshal(row)
	if err != nil {
		slog.Warn("type cache encode error", "key", key, "error", err)
		return
	}
	if err := tc.client.Set(ctx, typeKeyPrefix+key, encoded, tc.ttl).Err(); err != nil {
		slog.Warn("type cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single row from the cache.
func (tc *TypeCache) Invalidate(ctx context.Context, key string) {
	if err := tc.client.Del(ctx, typeKeyPrefix+key).Err(); err != nil {
		slog.Warn("type cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("type cache invalidated", "key", key)
}
