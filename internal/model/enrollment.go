package model

import "time"

// Enrollment links one user to one course. The (UserID, CourseID) pair is unique.
type Enrollment struct {
	ID        int64
	UserID    int64
	CourseID  int64
	CreatedAt time.Time

	// Course is populated by queries that join the course row.
	Course *Course
}
