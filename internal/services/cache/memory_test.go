package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "video1-en", []byte("subtitles"), time.Hour))

	value, found := mc.Get(ctx, "video1-en")
	require.True(t, found)
	assert.Equal(t, []byte("subtitles"), value)

	_, found = mc.Get(ctx, "video1-ja")
	assert.False(t, found)
}

func TestMemoryCacheTTLBoundary(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	storedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := storedAt
	mc.SetClock(func() time.Time { return current })

	require.NoError(t, mc.Set(ctx, "video1-en", []byte("payload"), 24*time.Hour))

	// Still served one minute before expiry
	current = storedAt.Add(23*time.Hour + 59*time.Minute)
	value, found := mc.Get(ctx, "video1-en")
	require.True(t, found)
	assert.Equal(t, []byte("payload"), value)

	// Treated as a miss one minute after expiry
	current = storedAt.Add(24*time.Hour + 1*time.Minute)
	_, found = mc.Get(ctx, "video1-en")
	assert.False(t, found)

	// Expired entries are removed on access, not just hidden
	assert.False(t, mc.Has(ctx, "video1-en"))
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "key", []byte("v"), time.Hour))
	require.NoError(t, mc.Delete(ctx, "key"))

	_, found := mc.Get(ctx, "key")
	assert.False(t, found)
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "video1-en", []byte("a"), time.Hour))
	require.NoError(t, mc.Set(ctx, "video1-ja", []byte("b"), time.Hour))
	require.NoError(t, mc.Set(ctx, "video2-en", []byte("c"), time.Hour))

	require.NoError(t, mc.DeletePrefix(ctx, "video1-"))

	assert.False(t, mc.Has(ctx, "video1-en"))
	assert.False(t, mc.Has(ctx, "video1-ja"))
	assert.True(t, mc.Has(ctx, "video2-en"))
}

func TestMemoryCacheClear(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, mc.Clear(ctx))

	assert.False(t, mc.Has(ctx, "a"))
	assert.False(t, mc.Has(ctx, "b"))
	assert.Equal(t, int64(0), mc.Stats().Size)
}

func TestMemoryCacheStats(t *testing.T) {
	mc := NewMemoryCache(1)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "key", []byte("value"), time.Hour))
	mc.Get(ctx, "key")
	mc.Get(ctx, "missing")

	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}
