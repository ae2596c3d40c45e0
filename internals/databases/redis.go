package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the sábana cache and the realtime notification channel.
// The app must keep working without it (fail-open), so a failed ping
// only logs — it never aborts startup.
var Redis *redis.Client

func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, sábana cache disabled")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] redis ping failed (cache runs degraded): %v", err)
		return
	}
	log.Println("✅ Redis connected.")
}
