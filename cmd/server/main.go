// Package main is the entry point for the admin dashboard API.
// It loads configuration, opens the escrow data source, and serves the
// dashboard routes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"challenz/internal/config"
	"challenz/internal/handlers"
	"challenz/internal/logging"
	"challenz/internal/metrics"
	"challenz/internal/middleware"
	"challenz/internal/repositories"
	"challenz/internal/repositories/cache"
	"challenz/internal/routes"
	"challenz/internal/services/escrow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	log := logging.New(config.GetEnv("LOG_LEVEL", "info"), config.IsProduction())

	backend, err := repositories.OpenBackend(config.DataSource())
	if err != nil {
		log.WithError(err).Fatal("failed to open escrow data source")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Warn("failed to close data source")
		}
	}()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := backend.Ping(startupCtx); err != nil {
		log.WithError(err).WithField("source", backend.Source).Warn("data source not reachable at startup")
	} else {
		log.WithField("source", backend.Source).Info("connected to escrow data source")
	}
	cancel()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	defer redisClient.Close()

	collector := metrics.New()
	escrowService := escrow.NewService(
		backend.Escrow,
		escrow.Config{Location: config.Location()},
		collector,
		log,
	)

	healthChecks := map[string]handlers.HealthCheckFunc{
		"database": backend.Ping,
		"redis": func(ctx context.Context) error {
			return cache.HealthCheck(ctx, redisClient)
		},
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "challenz-admin",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(collector.Middleware())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,HEAD,OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api", limiter.New(limiterConfig(log, redisClient)))

	routes.SetupRoutes(app, routes.Dependencies{
		Escrow:    handlers.NewEscrowHandler(escrowService),
		Health:    handlers.NewHealthHandler(healthChecks),
		StaffAuth: middleware.NewStaffAuth(config.GetEnv("DASHBOARD_JWT_SECRET", ""), log),
		Metrics:   collector,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Warn("graceful shutdown failed")
		}
	}()

	// Start server
	if err := app.Listen(":" + config.GetEnv("PORT", "8080")); err != nil {
		log.WithError(err).Error("server stopped")
	}
}

// limiterConfig shares limiter counters through redis when it answers at
// startup, and falls back to per-process memory otherwise.
func limiterConfig(log *logrus.Logger, redisClient *redis.Client) limiter.Config {
	cfg := limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT_MAX", 120),
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.HealthCheck(ctx, redisClient); err != nil {
		log.WithError(err).Warn("redis unavailable, rate limiting in memory")
		return cfg
	}
	cfg.Storage = cache.NewStorage(redisClient, "limiter:")
	return cfg
}
