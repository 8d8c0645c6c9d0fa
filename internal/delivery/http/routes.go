package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cenoskoczek/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/users", handler.CreateUser)

		lists := v1.Group("/lists")
		{
			lists.POST("", handler.CreateList)
			lists.GET("/:id/items", handler.GetItems)
			lists.POST("/:id/items", handler.AddItem)
			lists.POST("/:id/compare", handler.CompareList)
		}

		v1.POST("/compare", handler.ComparePrices)
	}

	return router
}
