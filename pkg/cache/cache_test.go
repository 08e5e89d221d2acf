package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "twse:quotes:20260102", Key("twse:quotes", "20260102"))
	assert.Equal(t, "twse:chips:20260102:ALL", Key("twse:chips", "20260102", "ALL"))
}

func TestMemory_GetSet(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewMemoryWithClock(clock)
	ctx := context.Background()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("payload"), TTLDaily)

	got, ok := m.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemory_ExpiresOnRead(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewMemoryWithClock(func() time.Time { return clock() })
	ctx := context.Background()

	m.Set(ctx, "daily", []byte("a"), TTLDaily)
	m.Set(ctx, "registry", []byte("b"), TTLRegistry)

	// Advance past the daily TTL but within the registry TTL
	later := now.Add(TTLDaily + time.Minute)
	clock = func() time.Time { return later }

	_, ok := m.Get(ctx, "daily")
	assert.False(t, ok, "daily entry should expire after 1h")

	got, ok := m.Get(ctx, "registry")
	assert.True(t, ok, "registry entry should survive 1h")
	assert.Equal(t, []byte("b"), got)

	// Expired entry is dropped on read
	assert.Equal(t, 1, m.Len())
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}
	c.Set(ctx, "k", []byte("v"), time.Hour)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
