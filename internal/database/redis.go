package database

import (
	"context"
	"fmt"
	"go-gin-event-lookup/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis 回傳 nil client 代表未設定 REDIS_HOST，呼叫端應停用快取
func InitRedis(ctx context.Context, config *config.RedisConfig) (*redis.Client, error) {
	if config.Host == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}
