package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewListCache(client, time.Minute, 5*time.Second), mr
}

func TestListCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	var ids []string
	hit, err := c.Get(ctx, "entry_ids", "alice", &ids)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "entry_ids", "alice", []string{"e1", "e2"}))
	assert.True(t, mr.Exists("feedback:entry_ids:alice"))

	hit, err = c.Get(ctx, "entry_ids", "alice", &ids)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"e1", "e2"}, ids)

	var other []string
	hit, err = c.Get(ctx, "entry_ids", "bob", &other)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Delete(ctx, "entry_ids", "alice"))
	hit, err = c.Get(ctx, "entry_ids", "alice", &ids)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestListCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "sources", "alice", []string{"s1"}))
	mr.FastForward(2 * time.Minute)

	var ids []string
	hit, err := c.Get(ctx, "sources", "alice", &ids)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestListCache_DirtyMarker(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	dirty, err := c.IsDirty(ctx, "sources", "alice")
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, c.MarkDirty(ctx, "sources", "alice"))
	dirty, err = c.IsDirty(ctx, "sources", "alice")
	require.NoError(t, err)
	assert.True(t, dirty)

	mr.FastForward(6 * time.Second)
	dirty, err = c.IsDirty(ctx, "sources", "alice")
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestListCache_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("feedback:sources:alice", "{not json"))

	var ids []string
	hit, err := c.Get(ctx, "sources", "alice", &ids)
	require.Error(t, err)
	assert.False(t, hit)
}
