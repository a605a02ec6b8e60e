package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Counter tracks per-listing view counts in Redis. Redis is the system of
// record for views; nothing is mirrored into the relational store.
type Counter struct {
	rdb *redis.Client
}

func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

func viewKey(carID int) string {
	return fmt.Sprintf("views:car:%d", carID)
}

// Increment bumps the count for one listing detail view.
func (c *Counter) Increment(ctx context.Context, carID int) error {
	return c.rdb.Incr(ctx, viewKey(carID)).Err()
}

func (c *Counter) Count(ctx context.Context, carID int) (int64, error) {
	val, err := c.rdb.Get(ctx, viewKey(carID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// Counts returns counts for many listings in one MGET. Listings never viewed
// are present with count 0.
func (c *Counter) Counts(ctx context.Context, carIDs []int) (map[int]int64, error) {
	counts := make(map[int]int64, len(carIDs))
	if len(carIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(carIDs))
	for i, id := range carIDs {
		keys[i] = viewKey(id)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, id := range carIDs {
		counts[id] = 0
		if i >= len(vals) || vals[i] == nil {
			continue
		}
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			counts[id] = n
		}
	}
	return counts, nil
}
