package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Remote backends are exercised only when a server is configured:
//
//	SPARSESTRESS_TEST_REDIS=redis://localhost:6379/0
//	SPARSESTRESS_TEST_MONGO=mongodb://localhost:27017/sparsestress_test
func remoteCache(t *testing.T, env string) Cache {
	t.Helper()
	spec := os.Getenv(env)
	if spec == "" {
		t.Skipf("%s not set", env)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, err := Open(ctx, spec)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, []byte("payload"), time.Minute))
	data, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, c.Delete(ctx, key))
	_, hit, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache(t *testing.T) {
	c := remoteCache(t, "SPARSESTRESS_TEST_REDIS")
	assert.IsType(t, &RedisCache{}, c)
	exerciseCache(t, c)
}

func TestMongoCache(t *testing.T) {
	c := remoteCache(t, "SPARSESTRESS_TEST_MONGO")
	assert.IsType(t, &MongoCache{}, c)
	exerciseCache(t, c)
}
