package config

import (
	"os"
	"strconv"
	"sync"
)

// RedisConfig is optional: an empty Addr disables the status cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		redisConfig = &RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		}
	})
	return redisConfig
}
