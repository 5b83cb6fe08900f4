package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"netrecon/config"
	_ "netrecon/docs"
	"netrecon/enrich"
	"netrecon/logging"
)

// Run initializes dependencies and starts the scan service.
func Run(cfg config.Config) error {
	logger := logging.Logger()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	store := NewRedisStore(redisClient)

	// One enricher for the whole service: nmap presence is detected here and
	// never re-checked per host.
	enricher := enrich.NewSystem(cfg, logger)
	StartWorkers(store, cfg, enricher, 5)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware(logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(RateLimitMiddleware(redisClient, cfg.RateLimit, time.Minute, logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := NewServer(store)
	authed := gin.IRoutes(router)
	if cfg.APIKey != "" {
		authed = router.Group("/", AuthMiddleware(cfg.APIKey, logger))
	} else {
		logger.Warn("RECON_API_KEY unset, scan service is unauthenticated")
	}
	server.RegisterRoutes(authed)

	logger.Info("starting scan service", "addr", cfg.ListenAddr)
	return router.Run(cfg.ListenAddr)
}
