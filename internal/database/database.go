package database

import (
	"context"
	"go-gin-event-lookup/config"
	apperrors "go-gin-event-lookup/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

func InitDatabase(ctx context.Context, config *config.DatabaseConfig) (*pgxpool.Pool, error) {
	if config.URL == "" {
		return nil, apperrors.ErrDatabaseConfig
	}

	poolConfig, err := pgxpool.ParseConfig(config.URL)
	if err != nil {
		return nil, err
	}

	// 設置連接池參數
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	if config.MinConns > 0 {
		poolConfig.MinConns = config.MinConns
	}
	if config.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = config.MaxConnLifetime
	}
	if config.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
