package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/cache"
	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/database"
	"github.com/angelina-scw/course-enroll-backend-project/internal/logger"
	"github.com/angelina-scw/course-enroll-backend-project/internal/seed"
	"github.com/angelina-scw/course-enroll-backend-project/internal/service"
	"github.com/angelina-scw/course-enroll-backend-project/internal/storage"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "seed.yaml", "Path to the YAML seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	err = run(ctx, cfg, path, os.Stdout, log)
	cancel()
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Seed failed")
		os.Exit(1)
	}
}

// run applies the seed file at path. Connections are closed before it returns.
func run(ctx context.Context, cfg *config.Config, path string, out io.Writer, log zerolog.Logger) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg, cfg.AutoMigrate, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	var catalog service.CourseCatalogCache
	if cfg.CatalogCacheEnabled() {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Dur("ttl", cfg.CourseCacheTTL).
				Msg("Redis unavailable, cached course catalog stays stale until its TTL expires")
		} else {
			defer rdb.Close()
			catalog = cache.NewCourseCatalog(rdb, cfg.CourseCacheTTL)
		}
	}
	enrollments := service.NewEnrollmentService(store.Repos, catalog, log)

	res, err := seed.NewSeeder(store.Repos, enrollments, log).Apply(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Users: %d created, %d skipped\n", res.UsersCreated, res.UsersSkipped)
	fmt.Fprintf(out, "Courses: %d created, %d skipped\n", res.CoursesCreated, res.CoursesSkipped)
	return nil
}
