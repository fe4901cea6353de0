package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrationsFS embed.FS

// NewPostgresMigrator builds a migrator for the embedded PostgreSQL migrations.
// databaseURL uses the postgres:// scheme.
func NewPostgresMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/postgres")
	if err != nil {
		return nil, fmt.Errorf("load postgres migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init postgres migrator: %w", err)
	}
	return m, nil
}

// NewSQLiteMigrator builds a migrator bound to an open SQLite handle.
// Closing the returned migrator also closes db.
func NewSQLiteMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/sqlite")
	if err != nil {
		return nil, fmt.Errorf("load sqlite migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("init sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("init sqlite migrator: %w", err)
	}
	return m, nil
}

// MigratePostgres applies all pending PostgreSQL migrations.
func MigratePostgres(databaseURL string, log zerolog.Logger) error {
	m, err := NewPostgresMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	return up(m, log)
}

// MigrateSQLite applies all pending SQLite migrations. db stays open.
func MigrateSQLite(db *sql.DB, log zerolog.Logger) error {
	m, err := NewSQLiteMigrator(db)
	if err != nil {
		return err
	}
	// m.Close would close db through the driver.

	return up(m, log)
}

func up(m *migrate.Migrate, log zerolog.Logger) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	return nil
}
