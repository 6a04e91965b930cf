// Package cache provides a read-through Redis cache for active-ticket
// counts. Entries are keyed by a shared epoch that every ticket mutation
// bumps, so a stale epoch implicitly invalidates all agents' entries without
// tracking them individually.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	epochKey     = "tickets:epoch"
	countsKeyFmt = "tickets:counts:%s:agent:%d"
)

// Store is the minimal key/value surface the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore adapts a go-redis client to the Store interface.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

// TicketCounts caches per-agent active-ticket count maps. All methods are
// nil-receiver safe so the service degrades to direct queries when Redis is
// absent.
type TicketCounts struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewTicketCounts builds the cache.
func NewTicketCounts(store Store, ttl time.Duration, logger *zap.Logger) *TicketCounts {
	return &TicketCounts{store: store, ttl: ttl, logger: logger}
}

// Get returns the cached counts for the agent, if present. Store errors are
// treated as misses.
func (c *TicketCounts) Get(ctx context.Context, agentID int64) (map[int64]int64, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	key, err := c.countsKey(ctx, agentID)
	if err != nil {
		c.debug("count cache epoch read failed", err)
		return nil, false
	}
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.debug("count cache read failed", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	var counts map[int64]int64
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		c.debug("count cache entry corrupt", err)
		return nil, false
	}
	return counts, true
}

// Set stores the counts for the agent under the current epoch.
func (c *TicketCounts) Set(ctx context.Context, agentID int64, counts map[int64]int64) {
	if c == nil || c.store == nil {
		return
	}
	key, err := c.countsKey(ctx, agentID)
	if err != nil {
		c.debug("count cache epoch read failed", err)
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		c.debug("count cache marshal failed", err)
		return
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.debug("count cache write failed", err)
	}
}

// Bump advances the epoch, invalidating every cached entry.
func (c *TicketCounts) Bump(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}
	if _, err := c.store.Incr(ctx, epochKey); err != nil {
		c.debug("count cache bump failed", err)
	}
}

func (c *TicketCounts) countsKey(ctx context.Context, agentID int64) (string, error) {
	epoch, found, err := c.store.Get(ctx, epochKey)
	if err != nil {
		return "", err
	}
	if !found {
		epoch = "0"
	}
	return fmt.Sprintf(countsKeyFmt, epoch, agentID), nil
}

func (c *TicketCounts) debug(msg string, err error) {
	if c.logger != nil {
		c.logger.Debug(msg, zap.Error(err))
	}
}
