// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"beu/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (post cache).
	CacheClient *redis.Client
	// DraftClient is the dedicated client for schedule editor drafts.
	DraftClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitDraftCache initializes the Redis client holding schedule drafts.
func InitDraftCache() {
	DraftClient = newRedisClient(config.AppConfig.RedisDraftDB, "Drafts")
}

// GetDraftClient returns the Redis client holding schedule drafts.
func GetDraftClient() *redis.Client {
	if DraftClient == nil {
		InitDraftCache()
	}
	return DraftClient
}
