package http

import (
	"github.com/atelier/storefront/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/compare", handler.CompareRecords)

		products := v1.Group("/products/:id")
		{
			products.GET("/compare/:otherId", handler.CompareProducts)
			products.GET("/ratings", handler.GetRatings)
		}

		cart := v1.Group("/cart")
		{
			cart.POST("", handler.AddToCart)
			cart.GET("", handler.GetCart)
		}
	}

	return router
}
