package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/database"
	"github.com/angelina-scw/course-enroll-backend-project/internal/logger"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	m, db, err := newMigrator(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Migration failed to initialize")
	}
	defer func() {
		// The sqlite migrator owns db; closing it closes both.
		if _, err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("Migrator close failed")
		}
		if db != nil {
			_ = db.Close()
		}
	}()

	command := args[0]
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Up failed")
		}
		fmt.Println("Migrated up successfully")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Down failed")
		}
		fmt.Println("Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("No migrations applied")
				return
			}
			log.Fatal().Err(err).Msg("Version failed")
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal().Msg("force requires version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid version")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("Force failed")
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

// newMigrator builds a migrator for the configured driver. db is non-nil only for sqlite.
func newMigrator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*migrate.Migrate, *sql.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		m, err := database.NewSQLiteMigrator(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return m, db, nil
	default:
		m, err := database.NewPostgresMigrator(cfg.DatabaseURL)
		return m, nil, err
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("Commands: up, down, version, force <version>")
	fmt.Println("The database is selected by DATABASE_DRIVER, DATABASE_URL and SQLITE_PATH.")
}
