package main

import (
	"context"
	"go-gin-event-lookup/config"
	"go-gin-event-lookup/internal/cache"
	"go-gin-event-lookup/internal/database"
	"go-gin-event-lookup/internal/handler"
	"go-gin-event-lookup/internal/repository"
	"go-gin-event-lookup/internal/service"
	"go-gin-event-lookup/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.WithComponent("main")
	defer logger.L.Sync()

	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Warn("Invalid log level, keeping info", zap.String("level", cfg.Log.Level))
	}
	gin.SetMode(cfg.Server.GinMode)

	// 資料庫延遲連線：DATABASE_URL 缺少時不中止啟動，由第一個請求回報 500
	connector := database.NewConnector(config.GetDatabaseConfig)
	defer connector.Close()

	eventCache := cache.NewNopEventCache()
	rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		eventCache = cache.NewRedisEventCache(rdb, cfg.Redis.TTL)
	} else {
		log.Info("REDIS_HOST not set, event cache disabled")
	}

	eventRepo := repository.NewEventRepository(connector)
	eventService := service.NewEventService(connector, eventRepo, eventCache)
	eventHandler := handler.NewEventHandler(eventService)

	router := handler.NewRouter(eventHandler)
	log.Info("Server listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
