// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mindwell/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var (
	// TrackingClient backs per-user progress tracking.
	TrackingClient *redis.Client
)

// InitTrackingCache initializes the Redis client used for progress tracking.
func InitTrackingCache() {
	TrackingClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrackingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TrackingClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Tracking): %v", err)
	}
}

// GetTrackingClient returns the tracking Redis client.
func GetTrackingClient() *redis.Client {
	if TrackingClient == nil {
		InitTrackingCache()
	}
	return TrackingClient
}

// ReminderQueueOpt returns the asynq connection options for the reminder queue.
func ReminderQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}
