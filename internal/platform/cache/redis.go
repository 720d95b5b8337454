package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leet_tracker/internal/domain/model"
)

const analysisKeyPrefix = "analysis:"

// AnalysisCache stores analyzer output keyed by solution text.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*model.CodeAnalysis, bool, error)
	Set(ctx context.Context, key string, analysis *model.CodeAnalysis) error
	Close() error
}

// AnalysisKey derives the cache key for a solution. Identical text shares a
// key regardless of which problem or user it belongs to.
func AnalysisKey(solution string) string {
	sum := sha256.Sum256([]byte(solution))
	return analysisKeyPrefix + hex.EncodeToString(sum[:])
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// ConnectRedis dials addr and verifies the connection with a PING.
func ConnectRedis(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("addr", addr))
	return &RedisCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.CodeAnalysis, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redisCache.Get %s: %w", key, err)
	}

	var analysis model.CodeAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &analysis, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, analysis *model.CodeAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("redisCache.Set marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redisCache.Set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return err
	}
	c.logger.Info("Redis connection closed")
	return nil
}

// Noop is used when no Redis address is configured; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (*model.CodeAnalysis, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *model.CodeAnalysis) error { return nil }
func (Noop) Close() error { return nil }
