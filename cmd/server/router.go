package main

import (
	"slices"
	"time"

	"adventure-server/internal/handler"
	"adventure-server/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// newRouter assembles the HTTP surface. rateLimit may be nil.
func newRouter(log *zap.Logger, corsOrigins []string, gameHandler *handler.GameHandler, authMiddleware, rateLimit gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if slices.Contains(corsOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// gin copies global middleware into each route at registration time,
	// so this has to be attached before any route is added.
	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.Use(router)

	router.GET("/health", handler.HealthCheck)
	router.HEAD("/health", handler.HealthCheck)

	gameHandler.RegisterRoutes(router, authMiddleware, rateLimit)
	return router
}
