package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// ListCache stores per-owner list results as JSON. A short-lived dirty
// marker is set before a write so concurrent readers don't repopulate the
// key with a pre-write snapshot.
type ListCache struct {
	client         *redisv9.Client
	listTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewListCache(client *redisv9.Client, listTTL, dirtyMarkerTTL time.Duration) *ListCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &ListCache{
		client:         client,
		listTTL:        listTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

// Get decodes the cached value into dst. The bool reports a hit.
func (c *ListCache) Get(ctx context.Context, kind, userID string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.listKey(kind, userID)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s list failed: %w", kind, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("unmarshal cached %s list failed: %w", kind, err)
	}
	return true, nil
}

func (c *ListCache) Set(ctx context.Context, kind, userID string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s list cache failed: %w", kind, err)
	}
	if err := c.client.Set(ctx, c.listKey(kind, userID), payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s list failed: %w", kind, err)
	}
	return nil
}

func (c *ListCache) Delete(ctx context.Context, kind, userID string) error {
	if err := c.client.Del(ctx, c.listKey(kind, userID)).Err(); err != nil {
		return fmt.Errorf("redis delete %s list failed: %w", kind, err)
	}
	return nil
}

func (c *ListCache) MarkDirty(ctx context.Context, kind, userID string) error {
	if err := c.client.Set(ctx, c.dirtyKey(kind, userID), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *ListCache) IsDirty(ctx context.Context, kind, userID string) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey(kind, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *ListCache) listKey(kind, userID string) string {
	return fmt.Sprintf("feedback:%s:%s", kind, userID)
}

func (c *ListCache) dirtyKey(kind, userID string) string {
	return fmt.Sprintf("feedback:%s:dirty:%s", kind, userID)
}
