// schema.go provides a Valkey-backed cache of projected JSON-LD
// documents. A projected document only changes when its record's values
// or its content type change, so both paths invalidate here.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// schemaKeyPrefix is the Valkey key prefix for projected documents.
	schemaKeyPrefix = "schema:"

	// DefaultSchemaTTL is how long a projected document stays cached.
	DefaultSchemaTTL = 5 * time.Minute
)

// SchemaCache caches serialized JSON-LD documents per record.
type SchemaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSchemaCache creates a document cache backed by the given Valkey client.
func NewSchemaCache(client *redis.Client, ttl time.Duration) *SchemaCache {
	if ttl == 0 {
		ttl = DefaultSchemaTTL
	}
	return &SchemaCache{client: client, ttl: ttl}
}

// recordKey builds the cache key for one record's document.
func recordKey(typeKey string, recordID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", schemaKeyPrefix, typeKey, recordID)
}

// Get retrieves a cached document. Returns nil on miss.
func (sc *SchemaCache) Get(ctx context.Context, typeKey string, recordID uuid.UUID) []byte {
	val, err := sc.client.Get(ctx, recordKey(typeKey, recordID)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("schema cache get error", "type", typeKey, "record", recordID, "error", err)
		return nil
	}
	slog.Debug("schema cache hit", "type", typeKey, "record", recordID)
	return val
}

// Set stores a serialized document with the configured TTL.
func (sc *SchemaCache) Set(ctx context.Context, typeKey string, recordID uuid.UUID, doc []byte) {
	if err := sc.client.Set(ctx, recordKey(typeKey, recordID), doc, sc.ttl).Err(); err != nil {
		slog.Warn("schema cache set error", "type", typeKey, "record", recordID, "error", err)
	}
}

// InvalidateRecord removes one record's cached document.
func (sc *SchemaCache) InvalidateRecord(ctx context.Context, typeKey string, recordID uuid.UUID) {
	if err := sc.client.Del(ctx, recordKey(typeKey, recordID)).Err(); err != nil {
		slog.Warn("schema cache invalidate error", "type", typeKey, "record", recordID, "error", err)
	}
}

// InvalidateType removes every cached document of a content type by
// scanning for its prefix. Used when the type definition or its field
// groups change, since any record's projection could be affected.
func (sc *SchemaCache) InvalidateType(ctx context.Context, typeKey string) {
	pattern := schemaKeyPrefix + typeKey + ":*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("schema cache scan error", "type", typeKey, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("schema cache bulk delete error", "type", typeKey, "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("schema cache cleared for type", "type", typeKey, "deleted", deleted)
	}
}
