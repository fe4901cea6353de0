// Package seed loads users and courses from a YAML file into storage.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
	"github.com/angelina-scw/course-enroll-backend-project/internal/validator"
)

// File is the seed document.
//
//	users:
//	  - login: alice
//	courses:
//	  - courseName: CS101
//	    courseContent: Intro to CS
//	    teacherId: 7
//	    courseLocation: Room 1
type File struct {
	Users   []User   `yaml:"users" validate:"dive"`
	Courses []Course `yaml:"courses" validate:"dive"`
}

type User struct {
	Login string `yaml:"login" validate:"required,max=50,excludesall=/"`
}

type Course struct {
	CourseName     string `yaml:"courseName" validate:"required,coursename"`
	CourseContent  string `yaml:"courseContent"`
	TeacherID      int64  `yaml:"teacherId" validate:"gte=0"`
	CourseLocation string `yaml:"courseLocation" validate:"max=255"`
}

// ValidationError lists every invalid field of a seed file.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid seed file: " + strings.Join(parts, "; ")
}

// Load decodes and validates a seed document. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if fields := validator.Struct(&f); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	if err := checkUnique(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads the seed document at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

func checkUnique(f *File) error {
	fields := make(map[string]string)
	logins := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if logins[u.Login] {
			fields[fmt.Sprintf("users[%d].login", i)] = fmt.Sprintf("duplicate login %q", u.Login)
		}
		logins[u.Login] = true
	}
	names := make(map[string]bool, len(f.Courses))
	for i, c := range f.Courses {
		if names[c.CourseName] {
			fields[fmt.Sprintf("courses[%d].courseName", i)] = fmt.Sprintf("duplicate course %q", c.CourseName)
		}
		names[c.CourseName] = true
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CatalogInvalidator drops the cached course list.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// Result counts what Apply did.
type Result struct {
	UsersCreated   int
	UsersSkipped   int
	CoursesCreated int
	CoursesSkipped int
}

// Seeder writes seed documents. Rows that already exist are skipped, so
// applying the same file twice is safe.
type Seeder struct {
	repos   repository.Repositories
	catalog CatalogInvalidator
	log     zerolog.Logger
}

// NewSeeder creates a Seeder. catalog may be nil.
func NewSeeder(repos repository.Repositories, catalog CatalogInvalidator, log zerolog.Logger) *Seeder {
	return &Seeder{
		repos:   repos,
		catalog: catalog,
		log:     log.With().Str("component", "seeder").Logger(),
	}
}

// Apply inserts the users and courses of f.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result

	for _, u := range f.Users {
		err := s.repos.Users.Create(ctx, &model.User{Login: u.Login})
		switch {
		case err == nil:
			res.UsersCreated++
		case errors.Is(err, repository.ErrDuplicate):
			res.UsersSkipped++
			s.log.Debug().Str("login", u.Login).Msg("User exists, skipped")
		default:
			return res, fmt.Errorf("create user %q: %w", u.Login, err)
		}
	}

	for _, c := range f.Courses {
		err := s.repos.Courses.Create(ctx, &model.Course{
			CourseName:     c.CourseName,
			CourseContent:  c.CourseContent,
			TeacherID:      c.TeacherID,
			CourseLocation: c.CourseLocation,
		})
		switch {
		case err == nil:
			res.CoursesCreated++
		case errors.Is(err, repository.ErrDuplicate):
			res.CoursesSkipped++
			s.log.Debug().Str("course", c.CourseName).Msg("Course exists, skipped")
		default:
			return res, fmt.Errorf("create course %q: %w", c.CourseName, err)
		}
	}

	if res.CoursesCreated > 0 && s.catalog != nil {
		if err := s.catalog.InvalidateCatalog(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Failed to invalidate course catalog cache")
		}
	}

	s.log.Info().
		Int("users_created", res.UsersCreated).
		Int("users_skipped", res.UsersSkipped).
		Int("courses_created", res.CoursesCreated).
		Int("courses_skipped", res.CoursesSkipped).
		Msg("Seed applied")
	return res, nil
}
