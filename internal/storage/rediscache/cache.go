// Package rediscache caches availability snapshots for the pre-booking
// display path. The authoritative counters live in postgres; entries here
// carry a short TTL and are dropped after every committed booking or
// cancellation, so a stale read can only affect what a customer sees before
// booking, never whether a booking is admitted.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/manish-kag/railway-reservation/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "availability:"
	defaultTTL = 30 * time.Second
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Cache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

type entry struct {
	AC      int `json:"ac"`
	Sleeper int `json:"sleeper"`
}

// Get returns the cached snapshot, or nil on a miss.
func (c *Cache) Get(ctx context.Context, scheduleID string) (*domain.Availability, error) {
	raw, err := c.client.Get(ctx, keyPrefix+scheduleID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &domain.Availability{
		ScheduleID:       scheduleID,
		ACAvailable:      e.AC,
		SleeperAvailable: e.Sleeper,
	}, nil
}

func (c *Cache) Set(ctx context.Context, av domain.Availability) error {
	raw, err := json.Marshal(entry{AC: av.ACAvailable, Sleeper: av.SleeperAvailable})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+av.ScheduleID, raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, scheduleID string) error {
	return c.client.Del(ctx, keyPrefix+scheduleID).Err()
}
