package database

import (
	"context"
	"fmt"
	"log"

	"ehrbridge-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured Redis instance. Returns nil when
// no host is configured; the caller falls back to the in-memory settings
// store.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	if driverConfig.Redis.Host == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	return rdb
}
