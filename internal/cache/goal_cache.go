package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"go.uber.org/zap"
)

const (
	goalKeyTTL = time.Hour

	// versionKeyTTL outlives the value keys so a live version never
	// expires under entries that still reference it.
	versionKeyTTL = 24 * time.Hour
)

// GoalResolutionCache memoizes resolved goal sets in Redis. Each user
// has a version counter; bumping it on any goal write orphans every
// cached resolution for that user without scanning keys.
type GoalResolutionCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewGoalResolutionCache(client *redis.Client, logger *zap.Logger) *GoalResolutionCache {
	return &GoalResolutionCache{client: client, logger: logger}
}

func InitRedis(logger *zap.Logger) (*redis.Client, error) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	addr := fmt.Sprintf("%s:%s", redisHost, redisPort)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", addr),
		)
		return nil, err
	}

	logger.Info("redis_connected",
		zap.String("addr", addr),
	)
	return client, nil
}

// Get looks up a cached resolution and returns the versioned key it
// read under. The caller writes back with Set(key, ...) so the value
// lands under the version seen here; a version bump in between leaves
// the write under the orphaned old version rather than the new one.
func (c *GoalResolutionCache) Get(ctx context.Context, userID string, date time.Time) (*domain.GoalSet, string, bool) {
	key, err := c.goalKey(ctx, userID, date)
	if err != nil {
		return nil, "", false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("goal_cache_get_failed", zap.Error(err))
		}
		return nil, key, false
	}

	var set domain.GoalSet
	if err := json.Unmarshal([]byte(val), &set); err != nil {
		c.logger.Warn("goal_cache_unmarshal_failed", zap.Error(err))
		return nil, key, false
	}
	return &set, key, true
}

func (c *GoalResolutionCache) Set(ctx context.Context, key string, set domain.GoalSet) {
	data, err := json.Marshal(set)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, goalKeyTTL).Err(); err != nil {
		c.logger.Warn("goal_cache_set_failed", zap.Error(err))
	}
}

func (c *GoalResolutionCache) InvalidateUser(ctx context.Context, userID string) {
	versionKey := c.versionKey(userID)
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("goal_cache_invalidate_failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return
	}
	c.client.Expire(ctx, versionKey, versionKeyTTL)
}

func (c *GoalResolutionCache) goalKey(ctx context.Context, userID string, date time.Time) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey(userID)).Result()
	if err == redis.Nil {
		version = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("goals:%s:%s:%s", userID, version, date.Format(domain.DateLayout)), nil
}

func (c *GoalResolutionCache) versionKey(userID string) string {
	return fmt.Sprintf("goals:%s:version", userID)
}
