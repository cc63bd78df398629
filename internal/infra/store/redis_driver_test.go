package store

import (
	"context"
	"os"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisTestConfig(t *testing.T) config.RedisConfig {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ns := "storefront-test:" + uuid.NewString()

	return config.RedisConfig{Addr: addr, Prefix: ns + ":", Channel: ns + ":changes"}
}

func TestRedisDriver_RoundTripAndBatch(t *testing.T) {
	ctx := context.Background()
	cfg := redisTestConfig(t)

	driver, err := OpenRedisDriver(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer driver.Close()

	_, err = driver.Get(ctx, "cart")
	require.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, driver.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, driver.(repository.BatchWriter).WriteBatch(ctx, []repository.Mutation{
		{Key: "wishlist", Value: []byte(`[1]`)},
		{Key: "cart", Delete: true},
	}))

	keys, err := driver.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist"}, keys)

	require.NoError(t, driver.Delete(ctx, "wishlist"))
}

func TestRedisDriver_RemoteInstanceNotifies(t *testing.T) {
	ctx := context.Background()
	cfg := redisTestConfig(t)

	driver, err := OpenRedisDriver(ctx, cfg, discardLogger())
	require.NoError(t, err)
	store, err := NewStore(driver, discardLogger())
	require.NoError(t, err)
	defer store.Close()

	var rec changeRecorder
	store.Subscribe("cart", rec.record)

	other, err := OpenRedisDriver(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer other.Close()

	// The subscription is established asynchronously.
	require.Eventually(t, func() bool {
		_ = other.Set(ctx, "cart", []byte(`[]`))

		for _, change := range rec.snapshot() {
			if change.Remote {
				return true
			}
		}

		return false
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, other.Delete(ctx, "cart"))
}
