package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCache_SetGet tests basic set/get round trips
func TestCache_SetGet(t *testing.T) {
	c := New[string](time.Minute, 10)

	c.Set("k1", "v1")

	got, ok := c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

// TestCache_TTLExpiry tests that entries become absent after the TTL
func TestCache_TTLExpiry(t *testing.T) {
	c := New[string](50*time.Millisecond, 10)

	c.Set("k1", "v1")

	got, ok := c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", got)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

// TestCache_MaxSizeEviction tests oldest-inserted eviction when full
func TestCache_MaxSizeEviction(t *testing.T) {
	c := New[string](time.Hour, 3)

	c.Set("k1", "value1")
	c.Set("k2", "value2")
	c.Set("k3", "value3")
	c.Set("k4", "value4")

	_, ok := c.Get("k1")
	assert.False(t, ok, "oldest entry should have been evicted")

	got, ok := c.Get("k4")
	assert.True(t, ok)
	assert.Equal(t, "value4", got)

	assert.Equal(t, 3, c.Len())
}

// TestCache_EvictionPrefersExpired tests that expired entries are
// reclaimed before any live entry is evicted
func TestCache_EvictionPrefersExpired(t *testing.T) {
	c := New[int](40*time.Millisecond, 2)

	c.Set("old", 1)
	time.Sleep(50 * time.Millisecond)

	c.Set("a", 2)
	c.Set("b", 3)

	_, ok := c.Get("a")
	assert.True(t, ok, "live entry must survive when an expired one was reclaimable")
	_, ok = c.Get("b")
	assert.True(t, ok)
}

// TestCache_ZeroConfig tests that zero max size or zero TTL disables writes
func TestCache_ZeroConfig(t *testing.T) {
	t.Run("zero max size", func(t *testing.T) {
		c := New[string](time.Minute, 0)

		c.Set("k1", "v1")

		assert.False(t, c.Has("k1"))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("zero TTL", func(t *testing.T) {
		c := New[string](0, 10)

		c.Set("k1", "v1")

		assert.False(t, c.Has("k1"))
		assert.Equal(t, 0, c.Len())
	})
}

// TestCache_OverwriteKeepsSize tests that updating a key does not grow the cache
func TestCache_OverwriteKeepsSize(t *testing.T) {
	c := New[string](time.Minute, 10)

	c.Set("k1", "v1")
	c.Set("k1", "v2")

	got, ok := c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v2", got)
	assert.Equal(t, 1, c.Len())
}

// TestCache_Delete tests unconditional removal
func TestCache_Delete(t *testing.T) {
	c := New[string](time.Minute, 10)

	c.Set("k1", "v1")

	assert.True(t, c.Delete("k1"))
	assert.False(t, c.Delete("k1"))
	assert.False(t, c.Has("k1"))
}

// TestCache_Clear tests removal of all entries
func TestCache_Clear(t *testing.T) {
	c := New[int](time.Minute, 10)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, 5, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("k0"))
}

// TestCache_LenPurgesExpired tests that Len never counts stale entries
func TestCache_LenPurgesExpired(t *testing.T) {
	c := New[string](40*time.Millisecond, 10)

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	assert.Equal(t, 2, c.Len())

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, c.Len())
}
