package handler

import (
	"net/http"

	"go-gin-event-lookup/internal/middleware"
	"go-gin-event-lookup/pkg/logger"

	"github.com/gin-gonic/gin"
)

func NewRouter(events *EventHandler) *gin.Engine {
	router := gin.New()
	// /events/ 交由 GetBySlug 回報缺少 slug，不轉址到列表
	router.RedirectTrailingSlash = false
	log := logger.WithComponent("http")
	router.Use(middleware.RequestID(), middleware.AccessLog(log), middleware.Recovery(log))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	events.RegisterRoutes(router)
	return router
}
