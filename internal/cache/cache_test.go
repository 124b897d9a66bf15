package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache[string]()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 0))

	got, err := mc.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache[int]()
	defer mc.Stop()

	_, err := mc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCacheWithOptions[string](4, time.Hour)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache[string]()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 0))
	require.NoError(t, mc.Delete(ctx, "k"))

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheStopIdempotent(t *testing.T) {
	mc := NewMemoryCache[string]()
	mc.Stop()
	mc.Stop()
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedisCache(t *testing.T) (*RedisCache[payload], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisCache[payload](&RedisOptions{Addr: mr.Addr(), OpTimeout: time.Second})
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	rc, _ := newRedisCache(t)
	ctx := context.Background()

	want := payload{Name: "Egypt", Count: 3}
	require.NoError(t, rc.Set(ctx, "k", want, time.Minute))

	got, err := rc.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisCacheMiss(t *testing.T) {
	rc, _ := newRedisCache(t)

	_, err := rc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheTTL(t *testing.T) {
	rc, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "k", payload{Name: "x"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	rc, _ := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "k", payload{Name: "x"}, 0))
	require.NoError(t, rc.Delete(ctx, "k"))

	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewSelectsBackend(t *testing.T) {
	c := New[string](MemoryBackend, nil)
	if mc, ok := c.(*MemoryCache[string]); ok {
		defer mc.Stop()
	}
	assert.NotNil(t, c)

	assert.Panics(t, func() { New[string]("bogus", nil) })
}
