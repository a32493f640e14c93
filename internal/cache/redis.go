package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightlog/config"
	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns the cached enriched log of a user, or nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, userID string) ([]domain.EnrichedFlight, error) {
	data, err := c.client.Get(ctx, flightsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.EnrichedFlight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, userID string, flights []domain.EnrichedFlight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(userID), payload, c.ttl).Err()
}

// GetStats decodes one cached aggregate into dest. It reports false on a miss.
func (c *RedisCache) GetStats(ctx context.Context, userID, field string, dest any) (bool, error) {
	data, err := c.client.HGet(ctx, statsKey(userID), field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) SetStats(ctx context.Context, userID, field string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, statsKey(userID), field, payload)
	pipe.Expire(ctx, statsKey(userID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops everything cached for a user after their log changed.
func (c *RedisCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, flightsKey(userID), statsKey(userID)).Err()
}

func flightsKey(userID string) string {
	return "cache:flights:" + userID
}

func statsKey(userID string) string {
	return "cache:stats:" + userID
}

// StatsField names one aggregate inside a user's stats hash. The day is part
// of the field because the upcoming selector moves with it.
func StatsField(kind string, arg string, today domain.Date) string {
	return fmt.Sprintf("%s:%s:%s", kind, arg, today)
}
