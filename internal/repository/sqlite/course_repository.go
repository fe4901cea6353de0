package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

const courseColumns = `id, course_name, course_content, teacher_id, course_location, created_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner, c *model.Course) error {
	var createdAt int64
	if err := row.Scan(&c.ID, &c.CourseName, &c.CourseContent, &c.TeacherID, &c.CourseLocation, &createdAt); err != nil {
		return err
	}
	c.CreatedAt = fromMillis(createdAt)
	return nil
}

// GetByName retrieves a course by its unique name.
func (r *CourseRepository) GetByName(ctx context.Context, courseName string) (*model.Course, error) {
	c := &model.Course{}
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE course_name = ?`, courseName)
	if err := scanCourse(row, c); err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (course_name, course_content, teacher_id, course_location, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.CourseName, c.CourseContent, c.TeacherID, c.CourseLocation, now,
	)
	if err != nil {
		if isUniqueViolation(err, "courses") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert course: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("course id: %w", err)
	}
	c.ID = id
	c.CreatedAt = fromMillis(now)
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
