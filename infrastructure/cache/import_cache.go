package cache

import (
	"context"
	"time"

	"lcmtv/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const importedKeyTTL = 24 * time.Hour

// NewCache connects a redis client. A failed ping is returned as an error;
// callers keep going without the cache.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// ImportCache is a fast path in front of the SQL existence check during
// dedupe. Nil-safe: with no client (or a failing one) every lookup is a miss
// and the orchestrator falls through to the store.
type ImportCache struct {
	client *redis.Client
}

func NewImportCache(client *redis.Client) *ImportCache {
	return &ImportCache{client: client}
}

// WasImported reports whether the id was marked imported recently.
func (c *ImportCache) WasImported(ctx context.Context, youtubeID string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, importedKey(youtubeID)).Result()
	if err != nil {
		logger.GetLogger().WithField("error", err).Debug("import cache lookup failed")
		return false
	}
	return n > 0
}

// MarkImported records the id with a TTL; errors only get logged.
func (c *ImportCache) MarkImported(ctx context.Context, youtubeID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, importedKey(youtubeID), 1, importedKeyTTL).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Debug("import cache mark failed")
	}
}

func importedKey(youtubeID string) string {
	return "lcmtv:imported:" + youtubeID
}
