package cache_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"articlesum/internal/cache"
	"articlesum/internal/config"
	"articlesum/internal/database"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSQLiteStore(t *testing.T) (*cache.SQLite, *database.Database) {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "db.sqlite"), discardLogger())
	require.NoError(t, err)

	return cache.NewSQLite(db, cache.DefaultPrefix, discardLogger()), db
}

func TestSQLiteRoundTrip(t *testing.T) {
	store, db := newSQLiteStore(t)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		key := "https://" + rapid.StringMatching(`[a-z]{1,10}\.example/[a-z0-9/]{0,20}`).Draw(t, "key")
		value := rapid.String().Draw(t, "value")

		store.Put(ctx, key, value)

		got, ok := store.Get(ctx, key)
		if !ok {
			t.Fatalf("expected %q to be cached", key)
		}
		if got != value {
			t.Fatalf("Get(%q) = %q, want %q", key, got, value)
		}
	})
}

func TestSQLiteUsesNamespacedKeys(t *testing.T) {
	store, db := newSQLiteStore(t)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	ctx := context.Background()
	store.Put(ctx, "https://example.com/a", "summary")

	got, ok, err := db.GetSummary(ctx, "summary-https://example.com/a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "summary", got)

	count, err := store.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestSQLiteGetLogsAndMissesOnClosedDatabase(t *testing.T) {
	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "db.sqlite"), discardLogger())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var buf bytes.Buffer
	store := cache.NewSQLite(db, cache.DefaultPrefix, slog.New(slog.NewTextHandler(&buf, nil)))

	_, ok := store.Get(context.Background(), "https://example.com/a")
	require.False(t, ok)
	require.Contains(t, buf.String(), "Failed to read cached summary")

	store.Put(context.Background(), "https://example.com/a", "summary")
	require.Contains(t, buf.String(), "Failed to store summary")
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	memCfg := config.Config{CacheBackend: config.CacheBackendMemory}
	store, closeFn, err := cache.Open(ctx, memCfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &cache.Memory{}, store)
	require.NoError(t, closeFn())

	sqliteCfg := config.Config{
		CacheBackend: config.CacheBackendSQLite,
		CachePrefix:  cache.DefaultPrefix,
		DBPath:       filepath.Join(t.TempDir(), "db.sqlite"),
	}
	store, closeFn, err = cache.Open(ctx, sqliteCfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &cache.SQLite{}, store)

	store.Put(ctx, "https://example.com/a", "summary")
	got, ok := store.Get(ctx, "https://example.com/a")
	require.True(t, ok)
	require.Equal(t, "summary", got)
	require.NoError(t, closeFn())

	_, _, err = cache.Open(ctx, config.Config{CacheBackend: "etcd"}, discardLogger())
	require.Error(t, err)
}
