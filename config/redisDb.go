package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)
var redisCtx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

func GetRedisContext() context.Context {
	return redisCtx
}

// ConnectRedisWithRetry connects and sets the global redis client and locker.
// Redis is only used for the refresh run lock; tools may skip it entirely.
func ConnectRedisWithRetry() {
	godotenv.Load()
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		address = "127.0.0.1:6379"
	}

	var attempt int
	for {
		attempt++
		client := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		if err := client.Ping(redisCtx).Err(); err == nil {
			rdb = client
			locker = redislock.New(client)
			log.Printf("connected to redis (attempt=%d)", attempt)
			return
		} else {
			client.Close()
			sleep := time.Second * time.Duration(minInt(attempt, 5))
			log.Printf("failed to connect redis (attempt=%d): %v; retrying in %s", attempt, err, sleep)
			time.Sleep(sleep)
		}
	}
}
