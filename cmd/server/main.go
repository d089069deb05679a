package main

import (
	"fmt"
	"log"

	"github.com/atelier/storefront/config"
	httpDelivery "github.com/atelier/storefront/internal/delivery/http"
	"github.com/atelier/storefront/internal/infrastructure/cache"
	"github.com/atelier/storefront/internal/infrastructure/commerce"
	"github.com/atelier/storefront/internal/logging"
	"github.com/atelier/storefront/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting storefront backend",
		zap.String("version", "1.0.0"),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cacheTTL", cfg.Cache.TTL))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	commerceClient := commerce.NewClient(commerce.ClientConfig{
		BaseURL:       cfg.Commerce.BaseURL,
		Token:         cfg.Commerce.Token,
		Timeout:       cfg.Commerce.Timeout,
		RatePerSecond: cfg.Commerce.RatePerSecond,
		Burst:         cfg.Commerce.Burst,
	}, logger)

	logger.Info("commerce API configured",
		zap.String("baseURL", cfg.Commerce.BaseURL),
		zap.String("token", maskToken(cfg.Commerce.Token)),
		zap.Float64("ratePerSecond", cfg.Commerce.RatePerSecond))

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		memoryCache,
		commerceClient,
		usecase.ComparisonServiceConfig{
			CacheTTL:    cfg.Cache.TTL,
			ExcludeKeys: cfg.Comparison.ExcludeKeys,
		},
	)
	ratingService := usecase.NewRatingService(commerceClient)
	cartService := usecase.NewCartService(commerceClient)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService, ratingService, cartService, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// maskToken keeps only the first four characters of a secret for logging
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "..."
}
