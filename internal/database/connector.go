package database

import (
	"context"
	"sync"

	"go-gin-event-lookup/config"
	"go-gin-event-lookup/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Opener 依設定建立連線池，預設為 InitDatabase
type Opener func(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error)

// Connector 是整個 process 共用的資料庫連線狀態。
// 第一次成功連線前，每次 Pool 都會重新讀取設定；成功之後便沿用同一個連線池，不再檢查設定。
type Connector struct {
	mu      sync.Mutex
	resolve func() config.DatabaseConfig
	open    Opener
	pool    *pgxpool.Pool
}

func NewConnector(resolve func() config.DatabaseConfig) *Connector {
	return NewConnectorWithOpener(resolve, InitDatabase)
}

func NewConnectorWithOpener(resolve func() config.DatabaseConfig, open Opener) *Connector {
	return &Connector{resolve: resolve, open: open}
}

// Connect 確保連線已建立，缺少 DATABASE_URL 時回傳 apperrors.ErrDatabaseConfig
func (c *Connector) Connect(ctx context.Context) error {
	_, err := c.Pool(ctx)
	return err
}

func (c *Connector) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		return c.pool, nil
	}

	cfg := c.resolve()
	pool, err := c.open(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("database").Info("Database connected",
		zap.Int32("max_conns", pool.Config().MaxConns),
	)
	c.pool = pool
	return pool, nil
}

func (c *Connector) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool != nil
}

func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}
