package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lifelog/internal/logger"
)

const contextTTL = 24 * time.Hour

// ContextCache keeps a short rolling window of each user's recent
// messages in Redis. It is best-effort: a cache outage degrades to
// contextless classification and never fails the message.
type ContextCache struct {
	rdb    *redis.Client
	window int
	log    *logger.Logger
}

func NewContextCache(rdb *redis.Client, window int, log *logger.Logger) *ContextCache {
	if window <= 0 {
		window = 5
	}
	return &ContextCache{rdb: rdb, window: window, log: log.With("service", "context_cache")}
}

func contextKey(telegramID int64) string {
	return fmt.Sprintf("lifelog:recent:%d", telegramID)
}

// Recent returns the stored messages oldest first.
func (c *ContextCache) Recent(ctx context.Context, telegramID int64) []string {
	if c == nil || c.rdb == nil {
		return nil
	}
	items, err := c.rdb.LRange(ctx, contextKey(telegramID), 0, int64(c.window-1)).Result()
	if err != nil {
		c.log.Warn("read recent context", "telegram_id", telegramID, "error", err.Error())
		return nil
	}
	// Stored newest first; flip for the prompt.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// Remember pushes a handled message onto the window.
func (c *ContextCache) Remember(ctx context.Context, telegramID int64, text string) {
	if c == nil || c.rdb == nil {
		return
	}
	key := contextKey(telegramID)
	pipe := c.rdb.Pipeline()
	pipe.LPush(ctx, key, text)
	pipe.LTrim(ctx, key, 0, int64(c.window-1))
	pipe.Expire(ctx, key, contextTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("store recent context", "telegram_id", telegramID, "error", err.Error())
	}
}
