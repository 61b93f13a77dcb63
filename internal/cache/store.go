package cache

import (
	"context"
	"fmt"
	"log/slog"

	"articlesum/internal/config"
	"articlesum/internal/database"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces summary keys so they do not collide with
// unrelated data living in the same storage.
const DefaultPrefix = "summary-"

// Store maps an article URL to its cleaned summary. Implementations never
// fail on the caller: backend errors are logged and Get reports a miss.
// Entries never expire and are never evicted.
type Store interface {
	Get(ctx context.Context, articleURL string) (string, bool)
	Put(ctx context.Context, articleURL string, summary string)
}

// Sizer is implemented by stores that can count their entries.
type Sizer interface {
	Len(ctx context.Context) (int64, error)
}

// Key returns the persisted key for an article URL.
func Key(prefix string, articleURL string) string {
	return prefix + articleURL
}

// Open builds the backend selected by cfg.CacheBackend. The returned close
// function releases the backend's resources.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (Store, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return NewMemory(), func() error { return nil }, nil
	case config.CacheBackendSQLite:
		db, err := database.New(ctx, cfg.DBPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		return NewSQLite(db, cfg.CachePrefix, log), db.Close, nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("ping redis (addr = %s): %w", cfg.RedisAddr, err)
		}

		return NewRedis(client, cfg.CachePrefix, log), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend: %q", cfg.CacheBackend)
	}
}
