package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/cache"
	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/database"
	"github.com/angelina-scw/course-enroll-backend-project/internal/handler"
	"github.com/angelina-scw/course-enroll-backend-project/internal/logger"
	"github.com/angelina-scw/course-enroll-backend-project/internal/middleware"
	"github.com/angelina-scw/course-enroll-backend-project/internal/router"
	"github.com/angelina-scw/course-enroll-backend-project/internal/service"
	"github.com/angelina-scw/course-enroll-backend-project/internal/storage"
	"github.com/angelina-scw/course-enroll-backend-project/internal/validator"
	"github.com/angelina-scw/course-enroll-backend-project/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("driver", cfg.DatabaseDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting course enrollment backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Database ───────────────────────────────────────────
	store, err := storage.Open(ctx, cfg, cfg.AutoMigrate, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Failed to open database")
	}
	defer store.Close()

	checks := map[string]handler.Pinger{"database": store}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var catalog service.CourseCatalogCache
	var rdb *redis.Client
	if cfg.CatalogCacheEnabled() {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		catalog = cache.NewCourseCatalog(rdb, cfg.CourseCacheTTL)
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	} else {
		log.Info().
			Bool("redis_url_set", cfg.RedisURL != "").
			Dur("ttl", cfg.CourseCacheTTL).
			Msg("Course catalog cache disabled")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	enrollmentService := service.NewEnrollmentService(store.Repos, catalog, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course: handler.NewCourseHandler(enrollmentService, log),
		Health: handler.NewHealthHandler(checks, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if catalog != nil {
		catalogWorker := worker.NewCatalogWorker(enrollmentService, cfg.CourseCacheTTL/2, log)
		go func() {
			catalogWorker.Start(workerCtx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Close()
	r := router.SetupRouter(authService, handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers.
	workerCancel()
	<-workerDone

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
