package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

const keyPrefix = "statsboard:leaderboard:"

// RedisConfig holds connection settings for the leaderboard cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores leaderboards as JSON values with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewRedisCacheFromClient(client, cfg.TTL), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func leaderboardKey(window models.Window, metric stattype.Kind) string {
	if window.IsAllTime() {
		return fmt.Sprintf("%s%s:all", keyPrefix, metric.ID())
	}
	return fmt.Sprintf("%s%s:%dd", keyPrefix, metric.ID(), int(window))
}

func (c *RedisCache) Get(ctx context.Context, window models.Window, metric stattype.Kind) (*models.LeaderboardSnapshot, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_cache")
	key := leaderboardKey(window, metric)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("cache miss: %s", key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}

	var snapshot models.LeaderboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", key, err)
	}
	log.Debug("cache hit: %s", key)
	return &snapshot, true, nil
}

func (c *RedisCache) Set(ctx context.Context, snapshot *models.LeaderboardSnapshot) error {
	key := leaderboardKey(snapshot.Window, snapshot.Metric)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_cache")

	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning leaderboard keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting leaderboard keys: %w", err)
	}
	log.Debug("invalidated %d cached leaderboards", len(keys))
	return nil
}

// Ping reports whether redis is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
