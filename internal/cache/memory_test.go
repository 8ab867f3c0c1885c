package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Minute, clockwork.NewFakeClock())

	require.NoError(t, m.Set(ctx, "k", "v"))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.Equal(t, "memory", m.Name())
}

func TestMemory_Miss(t *testing.T) {
	m := NewMemory(4, time.Minute, clockwork.NewFakeClock())

	_, err := m.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := NewMemory(4, time.Minute, clock)

	require.NoError(t, m.Set(ctx, "k", "v"))

	clock.Advance(59 * time.Second)
	_, err := m.Get(ctx, "k")
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_EvictsClosestToExpiryWhenFull(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := NewMemory(3, time.Minute, clock)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), "v"))
		clock.Advance(time.Second)
	}

	require.NoError(t, m.Set(ctx, "k3", "v"))
	assert.Equal(t, 3, m.Len())

	_, err := m.Get(ctx, "k0")
	assert.ErrorIs(t, err, ErrMiss, "oldest entry should have been evicted")

	for _, key := range []string{"k1", "k2", "k3"} {
		_, err := m.Get(ctx, key)
		assert.NoError(t, err, key)
	}
}

func TestMemory_EvictsExpiredEntriesFirst(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := NewMemory(2, time.Minute, clock)

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))
	clock.Advance(2 * time.Minute)

	require.NoError(t, m.Set(ctx, "c", "3"))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Minute, clockwork.NewFakeClock())

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))
	require.NoError(t, m.Set(ctx, "a", "3"))

	assert.Equal(t, 2, m.Len())
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestOpen_DefaultsToMemory(t *testing.T) {
	c, closeFn, err := Open(context.Background(), Options{Size: 8, TTL: time.Minute})
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, "memory", c.Name())
}

func TestOpen_RejectsBadRedisURL(t *testing.T) {
	_, _, err := Open(context.Background(), Options{RedisURL: "://nope", Size: 8, TTL: time.Minute})
	assert.ErrorContains(t, err, "failed to parse redis URL")
}
