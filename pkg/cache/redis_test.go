package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-api/internal/models"
	apperrors "trivia-api/internal/pkg/errors"
)

// Nothing listens on port 1, so every command fails fast.
func unreachableCache() *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewRedisCacheWithClient(client, time.Minute)
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	c := unreachableCache()
	defer c.Close()
	ctx := context.Background()

	assert.Error(t, c.Ping(ctx))

	_, err := c.GetCategories(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound, "connection errors are not cache misses")

	assert.Error(t, c.SetCategories(ctx, nil))
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	c := NewRedisCacheWithClient(client, 10*time.Minute)
	t.Cleanup(func() { c.Close() })
	return c, server
}

func TestRedisCache_CategoriesRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.GetCategories(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "empty cache is a miss")

	categories := []models.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	require.NoError(t, c.SetCategories(ctx, categories))

	got, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestRedisCache_InvalidateCategories(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCategories(ctx, []models.Category{{ID: 1, Type: "Science"}}))
	require.NoError(t, c.InvalidateCategories(ctx))

	_, err := c.GetCategories(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, c.InvalidateCategories(ctx), "invalidating an empty cache is fine")
}

func TestRedisCache_CategoriesExpire(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCategories(ctx, []models.Category{{ID: 1, Type: "Science"}}))
	assert.Equal(t, 10*time.Minute, server.TTL(categoriesKey))

	server.FastForward(11 * time.Minute)
	_, err := c.GetCategories(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, server := newTestCache(t)
	require.NoError(t, server.Set(categoriesKey, "not json"))

	_, err := c.GetCategories(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
