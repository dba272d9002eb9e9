package database

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kondate-ai/backend/config"
)

// NewRedis creates a Redis client from the application configuration
func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
