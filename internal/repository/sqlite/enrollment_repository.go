package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// EnrollmentRepository handles user_course link rows.
type EnrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Get retrieves the enrollment for a (user, course) pair.
func (r *EnrollmentRepository) Get(ctx context.Context, userID, courseID int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, course_id, created_at FROM user_course
		 WHERE user_id = ? AND course_id = ?`, userID, courseID,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}

// ListByUser retrieves a user's enrollments joined with their courses.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uc.id, uc.user_id, uc.course_id, uc.created_at,
		        c.id, c.course_name, c.course_content, c.teacher_id, c.course_location, c.created_at
		 FROM user_course uc
		 JOIN courses c ON c.id = uc.course_id
		 WHERE uc.user_id = ?
		 ORDER BY uc.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		var enrolledAt, addedAt int64
		c := &model.Course{}
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &enrolledAt,
			&c.ID, &c.CourseName, &c.CourseContent, &c.TeacherID, &c.CourseLocation, &addedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		e.CreatedAt = fromMillis(enrolledAt)
		c.CreatedAt = fromMillis(addedAt)
		e.Course = c
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_course (user_id, course_id, created_at) VALUES (?, ?, ?)`,
		e.UserID, e.CourseID, now,
	)
	if err != nil {
		if isUniqueViolation(err, "user_course") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("enrollment id: %w", err)
	}
	e.ID = id
	e.CreatedAt = fromMillis(now)
	return nil
}

// Delete removes the enrollment for a (user, course) pair.
func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_course WHERE user_id = ? AND course_id = ?`, userID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
