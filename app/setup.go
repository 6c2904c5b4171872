package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/api"
	"github.com/mavhungutrezzy/umami-tube/config"
	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/router"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/services/cron"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/cache"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
)

// NewLogger builds the process logger from the environment
func NewLogger(env *config.EnvironmentVariable) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Mode:  env.GO_ENV,
		Level: env.LOG_LEVEL,
		File:  env.LOG_FILE,
	})
}

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}
	if getEnv.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	log, err := NewLogger(getEnv)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	store, err := database.StartGORM(getEnv, log)
	if err != nil {
		log.Error("Check whether the database is running", "driver", getEnv.DB_DRIVER)
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	registry := services.NewTaxonomyRegistry(store.GetDB())
	if err := registry.Load(context.Background()); err != nil {
		return err
	}

	// Redis is optional; without it cached responses and limiter counters live in process memory
	var cacheStorage, limiterStorage fiber.Storage
	if getEnv.REDIS_URL != "" {
		rdb, err := cache.Connect(getEnv.REDIS_URL)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory response cache", "error", err)
		} else {
			defer rdb.Close()
			cacheStorage = cache.NewStorage(rdb, "catalog:cache:")
			limiterStorage = cache.NewStorage(rdb, "catalog:ratelimit:")
		}
	}

	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB(), registry, log)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("Failed to start cron jobs", "error", err)
			cronManager = nil
		}
	}
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), log)

	router.SetupRoutes(server.GetEngine(), router.Config{
		Store:    store,
		Registry: registry,
		JWT: auth.JWTConfig{
			Secret: getEnv.JWT_SECRET,
			Issuer: getEnv.JWT_ISSUER,
		},
		Security: middleware.SecurityConfig{
			AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
			RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
			RateLimitWindow:   time.Minute,
			Storage:           limiterStorage,
		},
		Log:                   log,
		CacheStorage:          cacheStorage,
		AccommodationCacheTTL: getEnv.ACCOMMODATION_CACHE_TTL,
		BursaryCacheTTL:       getEnv.BURSARY_CACHE_TTL,
		TaxonomyCacheTTL:      getEnv.TAXONOMY_CACHE_TTL,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("Shutdown failed", "error", err)
		}
	}()

	return server.Run()
}
