package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/middleware"
	"github.com/angelina-scw/course-enroll-backend-project/internal/response"
	"github.com/angelina-scw/course-enroll-backend-project/internal/service"
	"github.com/angelina-scw/course-enroll-backend-project/internal/validator"
)

// coursePath is the :courseName path parameter. Its shape is not checked
// here: a name that cannot exist resolves to COURSE_NOT_FOUND after the user lookup.
type coursePath struct {
	CourseName string `uri:"courseName" binding:"required"`
}

// CourseHandler exposes the enrollment workflow over HTTP.
type CourseHandler struct {
	enrollments *service.EnrollmentService
	log         zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(enrollments *service.EnrollmentService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		enrollments: enrollments,
		log:         log.With().Str("component", "course_handler").Logger(),
	}
}

// Enroll godoc
// POST /api/student/course/:courseName
// Enrolls the caller. Responds 200 with an empty body.
func (h *CourseHandler) Enroll(c *gin.Context) {
	username, courseName, ok := h.bindCaller(c)
	if !ok {
		return
	}

	if err := h.enrollments.Enroll(c.Request.Context(), username, courseName); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ListCourses godoc
// GET /api/courses
// Returns every course as a bare JSON array.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.enrollments.ListCourses(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ListSelectedCourses godoc
// GET /api/student/selected-courses
// Returns the caller's courses in enrollment order as a bare JSON array.
func (h *CourseHandler) ListSelectedCourses(c *gin.Context) {
	username := middleware.GetUsername(c)
	if username == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courses, err := h.enrollments.ListSelectedCourses(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Drop godoc
// DELETE /api/student/course/:courseName
// Removes the caller's enrollment. Dropping a course the caller is not
// enrolled in also responds 200.
func (h *CourseHandler) Drop(c *gin.Context) {
	username, courseName, ok := h.bindCaller(c)
	if !ok {
		return
	}

	if err := h.enrollments.Drop(c.Request.Context(), username, courseName); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CourseHandler) bindCaller(c *gin.Context) (string, string, bool) {
	username := middleware.GetUsername(c)
	if username == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return "", "", false
	}

	var p coursePath
	if fields := validator.BindURI(c, &p); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return "", "", false
	}
	return username, p.CourseName, true
}

// fail maps workflow errors to status codes and error codes.
func (h *CourseHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
	case errors.Is(err, service.ErrCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, service.ErrDuplicateEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateEnrollment)
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Enrollment request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
