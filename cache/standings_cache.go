// Package cache keeps the public standings report in Redis between writes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/redis/go-redis/v9"
)

const (
	standingsKey  = "swiss:standings:asc"
	generationKey = "swiss:standings:generation"
)

type RedisStandingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStandingsCache(client *redis.Client, ttl time.Duration) *RedisStandingsCache {
	return &RedisStandingsCache{client: client, ttl: ttl}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisStandingsCache) Get(ctx context.Context) ([]models.Standing, bool, error) {
	data, err := c.client.Get(ctx, standingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached standings: %w", err)
	}
	var standings []models.Standing
	if err := json.Unmarshal(data, &standings); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached standings: %w", err)
	}
	return standings, true, nil
}

// Generation returns the write counter. A missing counter reads as zero.
func (c *RedisStandingsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read standings generation: %w", err)
	}
	return gen, nil
}

// Set stores standings read under generation. If a write has bumped the counter since then,
// the rows may predate it and nothing is stored.
func (c *RedisStandingsCache) Set(ctx context.Context, generation int64, standings []models.Standing) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("failed to encode standings: %w", err)
	}

	// WATCH aborts the EXEC below if Invalidate runs between the check and the write.
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, standingsKey, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("failed to cache standings: %w", err)
	}
	return nil
}

// Invalidate bumps the generation and drops the cached report in one MULTI block.
func (c *RedisStandingsCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, standingsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate cached standings: %w", err)
	}
	return nil
}
