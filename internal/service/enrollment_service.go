package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// Enrollment workflow errors.
var (
	ErrUserNotFound        = errors.New("no such user")
	ErrCourseNotFound      = errors.New("no such course")
	ErrDuplicateEnrollment = errors.New("user is already enrolled in this course")
)

// CourseCatalogCache caches the mapped course list. Implemented by cache.CourseCatalog.
type CourseCatalogCache interface {
	Get(ctx context.Context) ([]model.CourseDTO, bool, error)
	Set(ctx context.Context, courses []model.CourseDTO) error
	Invalidate(ctx context.Context) error
}

// EnrollmentService enrolls users in courses, lists courses and drops enrollments.
// It keeps no state between calls; the caller's login is always passed in.
type EnrollmentService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	catalog     CourseCatalogCache
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. catalog may be nil.
func NewEnrollmentService(repos repository.Repositories, catalog CourseCatalogCache, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		users:       repos.Users,
		courses:     repos.Courses,
		enrollments: repos.Enrollments,
		catalog:     catalog,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll creates the enrollment for (username, courseName).
//  1. user exists? (ErrUserNotFound)
//  2. course exists? (ErrCourseNotFound)
//  3. pair not enrolled yet? (ErrDuplicateEnrollment)
//  4. insert; a unique violation from the store is also ErrDuplicateEnrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, username, courseName string) error {
	user, course, err := s.resolve(ctx, username, courseName)
	if err != nil {
		return err
	}

	_, err = s.enrollments.Get(ctx, user.ID, course.ID)
	switch {
	case err == nil:
		return ErrDuplicateEnrollment
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("check enrollment: %w", err)
	}

	enrollment := &model.Enrollment{UserID: user.ID, CourseID: course.ID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn().
				Str("username", username).
				Str("course", courseName).
				Msg("Concurrent enroll rejected by unique constraint")
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("create enrollment: %w", err)
	}

	s.log.Info().
		Str("username", username).
		Str("course", courseName).
		Int64("enrollment_id", enrollment.ID).
		Msg("User enrolled")
	return nil
}

// ListCourses returns every course in storage order.
func (s *EnrollmentService) ListCourses(ctx context.Context) ([]model.CourseDTO, error) {
	if s.catalog != nil {
		cached, ok, err := s.catalog.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("Course catalog cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	dtos := model.NewCourseDTOs(courses)

	if s.catalog != nil {
		if err := s.catalog.Set(ctx, dtos); err != nil {
			s.log.Warn().Err(err).Msg("Course catalog cache write failed")
		}
	}
	return dtos, nil
}

// ListSelectedCourses returns the courses username is enrolled in, in enrollment order.
func (s *EnrollmentService) ListSelectedCourses(ctx context.Context, username string) ([]model.CourseDTO, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	courses := make([]model.Course, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			return nil, fmt.Errorf("enrollment %d has no course loaded", e.ID)
		}
		courses = append(courses, *e.Course)
	}
	return model.NewCourseDTOs(courses), nil
}

// Drop removes the enrollment for (username, courseName).
// Dropping a course the user is not enrolled in succeeds without changes.
func (s *EnrollmentService) Drop(ctx context.Context, username, courseName string) error {
	user, course, err := s.resolve(ctx, username, courseName)
	if err != nil {
		return err
	}

	if err := s.enrollments.Delete(ctx, user.ID, course.ID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}

	s.log.Info().
		Str("username", username).
		Str("course", courseName).
		Msg("User dropped course")
	return nil
}

// InvalidateCatalog drops the cached course list, if a cache is configured.
func (s *EnrollmentService) InvalidateCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Invalidate(ctx)
}

// resolve looks up the user first, then the course.
func (s *EnrollmentService) resolve(ctx context.Context, username, courseName string) (*model.User, *model.Course, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	// Stored names are valid UTF-8; Postgres rejects other parameters outright.
	if courseName == "" || !utf8.ValidString(courseName) {
		return nil, nil, ErrCourseNotFound
	}

	course, err := s.courses.GetByName(ctx, courseName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, fmt.Errorf("find course: %w", err)
	}
	return user, course, nil
}

func (s *EnrollmentService) resolveUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
