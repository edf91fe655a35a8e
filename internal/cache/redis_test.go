package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydeu/LinkShortener/internal/cache"
)

func newTestRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "shortId:abc", []byte(`{"shortId":"abc"}`), time.Hour))

	data, err := c.Get(ctx, "shortId:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"shortId":"abc"}`), data)

	// TTL действительно выставлен на ключе.
	assert.Equal(t, time.Hour, mr.TTL("shortId:abc"))
}

// Отсутствие ключа — не ошибка
func TestRedisCache_GetMissing(t *testing.T) {
	c, _ := newTestRedis(t)

	data, err := c.Get(context.Background(), "shortId:nope")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "shortId:abc", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	data, err := c.Get(ctx, "shortId:abc")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisCache_Del(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "shortId:abc", []byte("x"), time.Hour))
	require.NoError(t, c.Del(ctx, "shortId:abc", "link:https://example.com/a"))

	data, err := c.Get(ctx, "shortId:abc")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Повторное удаление отсутствующих ключей — no-op.
	assert.NoError(t, c.Del(ctx, "shortId:abc"))
	assert.NoError(t, c.Del(ctx))
}

func TestRedisCache_Keys(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "shortId:one", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "shortId:two", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "link:https://example.com/a", []byte("3"), time.Hour))

	keys, err := c.Keys(ctx, "shortId:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shortId:one", "shortId:two"}, keys)
}

func TestRedisCache_Ping(t *testing.T) {
	c, mr := newTestRedis(t)

	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
