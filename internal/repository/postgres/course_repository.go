package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

const courseColumns = `id, course_name, course_content, teacher_id, course_location, created_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByName retrieves a course by its unique name.
func (r *CourseRepository) GetByName(ctx context.Context, courseName string) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_name = $1`, courseName,
	).Scan(&c.ID, &c.CourseName, &c.CourseContent, &c.TeacherID, &c.CourseLocation, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.CourseName, &c.CourseContent, &c.TeacherID, &c.CourseLocation, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (course_name, course_content, teacher_id, course_location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.CourseName, c.CourseContent, c.TeacherID, c.CourseLocation,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isDuplicateConstraintError(err, constraintCourseName) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
