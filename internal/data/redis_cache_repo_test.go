package data

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestRedisCacheRepo_Set_Get_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := core.CollectionCacheKey("jobs")
		value := []byte(`[{"id":"1"}]`)
		ttl := 5 * time.Minute

		require.NoError(t, repo.Set(ctx, key, value, ttl))

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, result)

		actualTTL := client.TTL(ctx, key).Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		result, err := repo.Get(ctx, "studio:collection:missing")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete existing key", func(t *testing.T) {
		key := core.CollectionCacheKey("invoices")
		require.NoError(t, repo.Set(ctx, key, []byte("[]"), time.Minute))

		deleted, err := repo.Delete(ctx, key)
		require.NoError(t, err)
		assert.True(t, deleted)

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete non-existent key", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "studio:collection:missing")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, repo.Health(ctx))
	})
}

func TestRedisCacheRepo_EmptyKey(t *testing.T) {
	// Empty keys are rejected before any network call.
	repo := NewRedisCacheRepo(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	ctx := context.Background()

	require.ErrorIs(t, repo.Set(ctx, "", []byte("x"), time.Second), errEmptyKey)

	_, err := repo.Get(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)

	_, err = repo.Delete(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)

	require.Error(t, repo.PublishInvalidation(ctx, "  "))

	assert.Equal(t, core.InvalidationChannel, repo.WithChannel(" ").channel)
	assert.Equal(t, "custom", repo.WithChannel("custom").channel)
}

func TestRedisCacheRepo_Invalidations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	repo := NewRedisCacheRepo(client).WithChannel("studio:invalidations:test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- repo.SubscribeInvalidations(ctx, func(resource string) { got <- resource })
	}()

	// Publish until the subscriber is attached; the first message may race the subscribe.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for received := false; !received; {
		select {
		case <-tick.C:
			require.NoError(t, repo.PublishInvalidation(ctx, "transactions"))
		case r := <-got:
			assert.Equal(t, "transactions", r)
			received = true
		case <-deadline:
			t.Fatal("no invalidation received")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
}
