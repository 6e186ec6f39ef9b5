// Package rediscache mirrors reconciled sold counters into Redis for the
// public listing. The cache is display-only: issuance never reads it, and a
// cold or unreachable cache just falls back to the stored column.
package rediscache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type CounterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCounterCache(client *redis.Client, ttl time.Duration) *CounterCache {
	return &CounterCache{client: client, ttl: ttl}
}

func soldKey(eventID int64) string {
	return fmt.Sprintf("event:%d:sold", eventID)
}

func (c *CounterCache) SetSoldCount(ctx context.Context, eventID int64, sold int) error {
	return c.client.Set(ctx, soldKey(eventID), sold, c.ttl).Err()
}

func (c *CounterCache) GetSoldCount(ctx context.Context, eventID int64) (int, bool, error) {
	val, err := c.client.Get(ctx, soldKey(eventID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	sold, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return sold, true, nil
}
