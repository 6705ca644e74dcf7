package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

const cacheTTL = 30 * time.Minute

/*
* Redis is optional: without REDIS_ADDR the cache helpers are no-ops
* Cache failures are logged by callers and never fail a request
 */
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, entity cache disabled")
		return
	}
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := Rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable, entity cache disabled:", err)
		Rdb = nil
	}
}

func SetCache(ctx context.Context, key string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, raw, cacheTTL).Err()
}

func GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	if Rdb == nil {
		return false, nil
	}
	raw, err := Rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func DeleteCache(ctx context.Context, key string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, key).Err()
}
