package model

import "time"

// Course represents a named course offering.
type Course struct {
	ID             int64     `json:"-"`
	CourseName     string    `json:"courseName"`
	CourseContent  string    `json:"courseContent"`
	TeacherID      int64     `json:"teacherId"`
	CourseLocation string    `json:"courseLocation"`
	CreatedAt      time.Time `json:"-"`
}

// CourseDTO is the client-facing view of a course. It never carries the internal ID.
type CourseDTO struct {
	CourseName     string `json:"courseName"`
	CourseContent  string `json:"courseContent"`
	TeacherID      int64  `json:"teacherId"`
	CourseLocation string `json:"courseLocation"`
}

// NewCourseDTO maps a course record to its client representation.
func NewCourseDTO(c Course) CourseDTO {
	return CourseDTO{
		CourseName:     c.CourseName,
		CourseContent:  c.CourseContent,
		TeacherID:      c.TeacherID,
		CourseLocation: c.CourseLocation,
	}
}

// NewCourseDTOs maps courses in order. The result is never nil.
func NewCourseDTOs(courses []Course) []CourseDTO {
	dtos := make([]CourseDTO, 0, len(courses))
	for _, c := range courses {
		dtos = append(dtos, NewCourseDTO(c))
	}
	return dtos
}
