package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/soumith2105/atomic-ticket-booking/api/routes"
	"github.com/soumith2105/atomic-ticket-booking/internal/invalidation"
	"github.com/soumith2105/atomic-ticket-booking/internal/locks"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/config"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/database"
	"github.com/soumith2105/atomic-ticket-booking/pkg/cache"
	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
	"github.com/soumith2105/atomic-ticket-booking/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB + Redis
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Lock registry over Redis. Preload the conditional Lua scripts so
	// the first acquire does not pay the EVAL round trip.
	registry := locks.NewRedisRegistry(db.GetRedisClient(), cfg.Locks)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := registry.PreloadScripts(ctx); err != nil {
			appLogger.Error("Failed to preload lock registry scripts", slog.Any("error", err))
			// Continue without failing - scripts will be loaded on first use
		} else {
			appLogger.Info("Lock registry Lua scripts preloaded")
		}
		cancel()
	}

	// Background sweep of expired lock entries. The Redis TTL is the
	// authoritative reaper; this just keeps the keyspace tidy.
	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	defer reaperCancel()
	reaper := locks.NewReaper(registry, cfg.Locks.ReapInterval)
	reaper.Start(reaperCtx)
	defer reaper.Stop()

	// Invalidation hooks: local Redis cache always, Kafka when brokers
	// are configured.
	hooks := []invalidation.Hook{
		invalidation.NewCacheHook(cache.NewService(db.GetRedisClient())),
	}
	if cfg.Kafka.Enabled {
		kafkaHook, err := invalidation.NewKafkaHook(
			invalidation.DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		if err != nil {
			appLogger.Error("Failed to initialize Kafka invalidation hook", slog.Any("error", err))
			appLogger.Info("Continuing with local cache invalidation only")
		} else {
			hooks = append(hooks, kafkaHook)
		}
	}
	broadcaster := invalidation.NewBroadcaster(cfg.Database.QueryTimeout, hooks...)
	defer broadcaster.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			LockRequests:    cfg.RateLimit.LockRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Setup router
	router := setupRouter(cfg, db, registry, broadcaster, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.String("lock_table", cfg.Locks.Table),
			slog.Duration("lock_ttl", cfg.Locks.TTL),
			slog.Bool("kafka_invalidation", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, registry locks.Registry,
	broadcaster *invalidation.Broadcaster, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, registry, broadcaster)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
