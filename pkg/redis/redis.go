package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
)

// Client wraps the Redis connection.
// Used for scheduler day-marks (catch-up detection after restarts) and for
// recording notification delivery failures. The process runs without Redis;
// callers must tolerate a nil client.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and performs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── scheduler day-marks ──

const dayMarkPrefix = "job:ran:"

// dayMarkTTL keeps marks past the day boundary so a post-midnight restart
// can still see yesterday's runs, without accumulating keys forever.
const dayMarkTTL = 48 * time.Hour

// MarkJobRan records that a job ran for the given local date.
func (c *Client) MarkJobRan(ctx context.Context, job string, day time.Time) error {
	key := dayMarkPrefix + job + ":" + day.Format("2006-01-02")
	return c.rdb.Set(ctx, key, "1", dayMarkTTL).Err()
}

// JobRanOn reports whether a job already ran for the given local date.
func (c *Client) JobRanOn(ctx context.Context, job string, day time.Time) (bool, error) {
	key := dayMarkPrefix + job + ":" + day.Format("2006-01-02")
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── delivery failure records ──

const deliveryFailPrefix = "notify:fail:"

// RecordDeliveryFailure stores the latest send failure per recipient for
// the debug surface. Kept for 7 days.
func (c *Client) RecordDeliveryFailure(ctx context.Context, recipient int64, reason string) error {
	key := fmt.Sprintf("%s%d", deliveryFailPrefix, recipient)
	return c.rdb.Set(ctx, key, reason, 7*24*time.Hour).Err()
}

// LastDeliveryFailure returns the latest recorded send failure for a
// recipient, or "" if none.
func (c *Client) LastDeliveryFailure(ctx context.Context, recipient int64) (string, error) {
	key := fmt.Sprintf("%s%d", deliveryFailPrefix, recipient)
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

// ── rate limiting ──

// CheckRateLimit counts requests per key in a fixed window and reports
// whether this one is still within the limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
