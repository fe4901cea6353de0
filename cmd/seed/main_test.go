package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/storage"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabaseDriver: config.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "seed.db"),
		AutoMigrate:    true,
	}
}

func TestRunAppliesSeedAndReleasesDatabase(t *testing.T) {
	cfg := sqliteConfig(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "users:\n  - login: alice\ncourses:\n  - courseName: CS101\n    teacherId: 7\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, path, &out, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Courses: 1 created, 0 skipped") {
		t.Fatalf("output = %q", out.String())
	}

	// The database was closed by run, so it can be reopened and rerun.
	out.Reset()
	if err := run(context.Background(), cfg, path, &out, zerolog.Nop()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(out.String(), "Users: 0 created, 1 skipped") {
		t.Fatalf("second output = %q", out.String())
	}

	store, err := storage.Open(context.Background(), cfg, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	if _, err := store.Repos.Courses.GetByName(context.Background(), "CS101"); err != nil {
		t.Fatalf("CS101: %v", err)
	}
}

func TestRunReturnsErrorsInsteadOfExiting(t *testing.T) {
	cfg := sqliteConfig(t)

	if err := run(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.yaml"), &bytes.Buffer{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing seed file")
	}

	cfg.DatabaseDriver = "oracle"
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("users: []\n"), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := run(context.Background(), cfg, path, &bytes.Buffer{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
