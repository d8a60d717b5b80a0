// Package cache keeps public account views in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

const defaultTTL = 5 * time.Minute

// AccountCache is a read-through cache of entity.PublicAccount keyed by ID.
// Only the public view is stored, never the password hash.
// A nil cache or nil client is a no-op.
type AccountCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewAccountCache(rdb *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	c := &AccountCache{ttl: ttl}
	if rdb != nil {
		c.rdb = rdb
	}
	return c
}

func accountKey(id string) string {
	return "account:public:" + id
}

func (c *AccountCache) enabled() bool { return c != nil && c.rdb != nil }

// Get reports ok=false on a miss.
func (c *AccountCache) Get(ctx context.Context, id string) (*entity.PublicAccount, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, accountKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var a entity.PublicAccount
	if err := json.Unmarshal(raw, &a); err != nil {
		// drop the unreadable entry so the next read repopulates it
		_ = c.rdb.Del(ctx, accountKey(id)).Err()
		return nil, false, err
	}
	return &a, true, nil
}

func (c *AccountCache) Set(ctx context.Context, a entity.PublicAccount) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, accountKey(a.ID), b, c.ttl).Err()
}
