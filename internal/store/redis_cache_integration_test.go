//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/store"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheRepositoryIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	t.Run("write-through save populates the cache", func(t *testing.T) {
		backing := store.NewMemoryStore()
		repo := store.NewRedisCacheRepository(backing, client, time.Minute)

		link := &shortener.Link{
			ID:        "cache-test-1",
			TargetURL: "https://example.com/",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SaveLink(ctx, link))

		defer client.Del(ctx, "link:cache-test-1")

		fields, err := client.HGetAll(ctx, "link:cache-test-1").Result()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", fields["target_url"])
	})

	t.Run("get falls back to the backing store and caches", func(t *testing.T) {
		backing := store.NewMemoryStore()
		repo := store.NewRedisCacheRepository(backing, client, time.Minute)

		link := &shortener.Link{
			ID:        "cache-test-2",
			TargetURL: "https://example.com/",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, backing.SaveLink(ctx, link))

		defer client.Del(ctx, "link:cache-test-2")

		got, err := repo.GetLink(ctx, "cache-test-2")
		require.NoError(t, err)
		assert.Equal(t, link.TargetURL, got.TargetURL)

		exists, err := client.Exists(ctx, "link:cache-test-2").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("serves from the cache when the backing store is empty", func(t *testing.T) {
		warm := store.NewMemoryStore()
		repo := store.NewRedisCacheRepository(warm, client, time.Minute)

		link := &shortener.Link{
			ID:        "cache-test-3",
			TargetURL: "https://example.com/",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SaveLink(ctx, link))

		defer client.Del(ctx, "link:cache-test-3")

		// A fresh repository over an empty backing store still resolves
		// the id from the shared cache.
		cold := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)

		got, err := cold.GetLink(ctx, "cache-test-3")
		require.NoError(t, err)
		assert.Equal(t, link.TargetURL, got.TargetURL)
	})

	t.Run("misses on an unknown id", func(t *testing.T) {
		repo := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)

		_, err := repo.GetLink(ctx, "cache-test-missing")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}
