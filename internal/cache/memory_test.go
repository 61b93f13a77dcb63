package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"articlesum/internal/cache"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.String().Draw(t, "key")
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

func TestMemoryMiss(t *testing.T) {
	store := cache.NewMemory()

	_, ok := store.Get(context.Background(), "https://example.com/missing")
	require.False(t, ok)
}

func TestMemoryPutIsIdempotent(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	store.Put(ctx, "https://example.com/a", "summary")
	store.Put(ctx, "https://example.com/a", "summary")

	got, ok := store.Get(ctx, "https://example.com/a")
	require.True(t, ok)
	require.Equal(t, "summary", got)
	count, err := store.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			key := fmt.Sprintf("https://example.com/%d", i)
			store.Put(ctx, key, key)

			got, ok := store.Get(ctx, key)
			if !ok || got != key {
				t.Errorf("unexpected entry for %q: %q (ok = %t)", key, got, ok)
			}
		})
	}
	wg.Wait()

	count, err := store.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 32, count)
}
