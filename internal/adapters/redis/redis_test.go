// internal/adapters/redis/redis_test.go
package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "", "", 0)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestCache_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewCache(client, 5*time.Minute)
	ctx := context.Background()

	products := []domain.Product{{ID: "p1", Name: "Gold Facial", Price: 1499}}
	require.NoError(t, cache.Set(ctx, "catalog:products", products))

	data, err := cache.Get(ctx, "catalog:products")
	require.NoError(t, err)

	var got []domain.Product
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, products, got)
	assert.Equal(t, 5*time.Minute, mr.TTL("catalog:products"))
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "catalog:banners", []domain.Banner{{ID: "b1"}}))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "catalog:banners")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "catalog:products", []string{}))
	require.NoError(t, cache.Set(ctx, "catalog:course:c1", map[string]string{}))
	mr.Set("storefront:default:beauty-cart", "{}")

	require.NoError(t, cache.DeleteByPrefix(ctx, "catalog:"))

	assert.False(t, mr.Exists("catalog:products"))
	assert.False(t, mr.Exists("catalog:course:c1"))
	assert.True(t, mr.Exists("storefront:default:beauty-cart"))
}

func TestCache_Ping(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewCache(client, time.Minute)

	require.NoError(t, cache.Ping(context.Background()))
	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}

func TestStore_RoundTripWithoutExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, "")
	ctx := context.Background()

	_, found, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "authToken", []byte("tok")))
	assert.Equal(t, time.Duration(0), mr.TTL("storefront:default:authToken"))

	value, found, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("tok"), value)

	require.NoError(t, store.Delete(ctx, "authToken"))
	_, found, err = store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ConnectionFailure(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, "alice")
	mr.Close()

	_, _, err := store.Get(context.Background(), "userData")
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "userData", []byte("{}")))
}
