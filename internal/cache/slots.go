package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"funcity/internal/domain"

	"github.com/go-redis/redis/v8"
)

const (
	slotsKeyPrefix = "slots:"
	genKeyPrefix   = "slots:gen:"

	// genTTL outlives any data TTL so a generation never resets under a live entry.
	genTTL = 7 * 24 * time.Hour
)

// store is the subset of the redis client the slot cache needs.
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func (s redisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s redisStore) Incr(ctx context.Context, key string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, key)
		p.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// SlotCache keeps the booked hours of a (location, date) for a short TTL.
type SlotCache struct {
	store store
	ttl   time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{store: redisStore{client: client}, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func genKey(loc domain.Location, date string) string {
	return genKeyPrefix + string(loc) + ":" + date
}

func slotsKey(loc domain.Location, date string, gen int64) string {
	return slotsKeyPrefix + string(loc) + ":" + date + ":" + strconv.FormatInt(gen, 10)
}

func (c *SlotCache) generation(ctx context.Context, loc domain.Location, date string) (int64, error) {
	raw, err := c.store.Get(ctx, genKey(loc, date))
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode slot generation: %w", err)
	}
	return gen, nil
}

// GetBookedHours looks up the hours cached under the current generation of
// (loc, date). A miss is (nil, gen, false, nil); a fill for that miss must be
// written back with the same gen so an Invalidate in between makes it unreachable.
func (c *SlotCache) GetBookedHours(ctx context.Context, loc domain.Location, date string) ([]int, int64, bool, error) {
	gen, err := c.generation(ctx, loc, date)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.store.Get(ctx, slotsKey(loc, date, gen))
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var hours []int
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, gen, false, fmt.Errorf("decode cached slots: %w", err)
	}
	return hours, gen, true, nil
}

func (c *SlotCache) SetBookedHours(ctx context.Context, loc domain.Location, date string, gen int64, hours []int) error {
	if hours == nil {
		hours = []int{}
	}
	b, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, slotsKey(loc, date, gen), string(b), c.ttl)
}

// Invalidate bumps the generation of every given date at loc. Entries cached
// under an older generation are never read again and expire on their own.
func (c *SlotCache) Invalidate(ctx context.Context, loc domain.Location, dates ...string) error {
	for _, d := range dates {
		if err := c.store.Incr(ctx, genKey(loc, d), genTTL); err != nil {
			return err
		}
	}
	return nil
}
