package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis stores summaries without expiration in the configured Redis DB.
type Redis struct {
	client redis.Cmdable
	prefix string
	log    *slog.Logger
}

func NewRedis(client redis.Cmdable, prefix string, log *slog.Logger) *Redis {
	return &Redis{client: client, prefix: prefix, log: log}
}

func (r *Redis) Get(ctx context.Context, articleURL string) (string, bool) {
	key := Key(r.prefix, articleURL)

	summary, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to read cached summary",
			"error", err,
			"key", key,
			"backend", "redis")

		return "", false
	}

	return summary, true
}

func (r *Redis) Put(ctx context.Context, articleURL string, summary string) {
	key := Key(r.prefix, articleURL)

	if err := r.client.Set(ctx, key, summary, 0).Err(); err != nil {
		r.log.ErrorContext(ctx, "Failed to store summary",
			"error", err,
			"key", key,
			"backend", "redis",
			"summaryLen", len(summary))
	}
}
