// Package postgres implements the repository contracts on PostgreSQL through pgx.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

const uniqueViolation = "23505"

// Constraint names from the embedded migrations.
const (
	constraintUserLogin  = "uq_users_login"
	constraintCourseName = "uq_courses_course_name"
	constraintUserCourse = "uq_user_course_user_course"
)

// NewRepositories wires every PostgreSQL repository onto one pool.
func NewRepositories(pool *pgxpool.Pool) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(pool),
		Courses:     NewCourseRepository(pool),
		Enrollments: NewEnrollmentRepository(pool),
	}
}

// isDuplicateConstraintError reports a unique violation on the named constraint.
func isDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// notFound translates pgx.ErrNoRows into repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
