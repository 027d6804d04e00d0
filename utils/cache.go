// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"medledger/config"

	"github.com/go-redis/redis/v8"
)

// SnapshotCacheKey is the Redis key holding the latest reconciliation snapshot.
const SnapshotCacheKey = "reconcile:snapshot"

var (
	// SnapshotCacheClient holds the serialized derived revenue view between refreshes.
	SnapshotCacheClient *redis.Client
)

// InitSnapshotCache initializes the Redis client used for snapshot caching.
func InitSnapshotCache() {
	SnapshotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSnapshotDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SnapshotCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Snapshot Cache): %v", err)
	}
}

// GetSnapshotCacheClient returns the snapshot cache client.
func GetSnapshotCacheClient() *redis.Client {
	if SnapshotCacheClient == nil {
		InitSnapshotCache()
	}
	return SnapshotCacheClient
}

// SnapshotCacheTTL returns the configured snapshot TTL.
func SnapshotCacheTTL() time.Duration {
	return time.Duration(config.AppConfig.SnapshotCacheTTL) * time.Second
}
