package main

import (
	"context"
	"go-gin-event-lookup/config"
	"go-gin-event-lookup/internal/database"
	"go-gin-event-lookup/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	defer logger.L.Sync()

	if err := database.Migrate(context.Background(), &cfg.Database); err != nil {
		logger.WithComponent("migrate").Fatal("Migration failed", zap.Error(err))
	}
}
