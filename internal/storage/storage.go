// Package storage opens the configured database engine and exposes its repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/database"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository/postgres"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository/sqlite"
)

// Storage is an open database with its repositories.
type Storage struct {
	Repos  repository.Repositories
	Driver string

	pool *pgxpool.Pool
	db   *sql.DB
}

// Open connects to cfg.DatabaseDriver and, when migrate is true, applies pending migrations.
func Open(ctx context.Context, cfg *config.Config, migrate bool, log zerolog.Logger) (*Storage, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		if migrate {
			if err := database.MigratePostgres(cfg.DatabaseURL, log); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Storage{Repos: postgres.NewRepositories(pool), Driver: cfg.DatabaseDriver, pool: pool}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := database.MigrateSQLite(db, log); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Storage{Repos: sqlite.NewRepositories(db), Driver: cfg.DatabaseDriver, db: db}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// Ping checks that the database answers.
func (s *Storage) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
}
