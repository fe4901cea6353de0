package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// EnrollmentRepository handles user_course link rows.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Get retrieves the enrollment for a (user, course) pair.
func (r *EnrollmentRepository) Get(ctx context.Context, userID, courseID int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, created_at FROM user_course
		 WHERE user_id = $1 AND course_id = $2`, userID, courseID,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// ListByUser retrieves a user's enrollments joined with their courses.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT uc.id, uc.user_id, uc.course_id, uc.created_at,
		        c.id, c.course_name, c.course_content, c.teacher_id, c.course_location, c.created_at
		 FROM user_course uc
		 JOIN courses c ON c.id = uc.course_id
		 WHERE uc.user_id = $1
		 ORDER BY uc.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		c := &model.Course{}
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt,
			&c.ID, &c.CourseName, &c.CourseContent, &c.TeacherID, &c.CourseLocation, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		e.Course = c
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_course (user_id, course_id) VALUES ($1, $2) RETURNING id, created_at`,
		e.UserID, e.CourseID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isDuplicateConstraintError(err, constraintUserCourse) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// Delete removes the enrollment for a (user, course) pair.
func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_course WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
