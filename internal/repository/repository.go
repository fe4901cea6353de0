// Package repository defines the storage contracts consumed by the services.
// Engine-specific implementations live in the postgres and sqlite subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

type CourseRepository interface {
	GetByName(ctx context.Context, courseName string) (*model.Course, error)
	// List returns every course in ascending ID order.
	List(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, c *model.Course) error
}

type EnrollmentRepository interface {
	Get(ctx context.Context, userID, courseID int64) (*model.Enrollment, error)
	// ListByUser returns the user's enrollments in ascending ID order with Course populated.
	ListByUser(ctx context.Context, userID int64) ([]model.Enrollment, error)
	// Create returns ErrDuplicate if the (user, course) pair already exists.
	Create(ctx context.Context, e *model.Enrollment) error
	// Delete removes the pair's enrollment. Deleting a missing pair is not an error.
	Delete(ctx context.Context, userID, courseID int64) error
}

// Repositories groups one implementation of each repository.
type Repositories struct {
	Users       UserRepository
	Courses     CourseRepository
	Enrollments EnrollmentRepository
}
