// Package sqlite implements the repository contracts on an embedded SQLite
// database (modernc.org/sqlite, no cgo). Used for local development and tests.
package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// NewRepositories wires every SQLite repository onto one handle.
func NewRepositories(db *sql.DB) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(db),
		Courses:     NewCourseRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// isUniqueViolation reports a UNIQUE/PRIMARY KEY failure on table.
func isUniqueViolation(err error, table string) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return strings.Contains(err.Error(), table+".")
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, table+".")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
