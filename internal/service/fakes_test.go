package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
)

// memStore is an in-memory implementation of all three repositories.
type memStore struct {
	mu          sync.Mutex
	users       map[string]*model.User
	courses     map[string]*model.Course
	enrollments map[int64]*model.Enrollment
	nextID      int64

	// createErr, when set, is returned by the next enrollment insert.
	createErr error
	listCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*model.User),
		courses:     make(map[string]*model.Course),
		enrollments: make(map[int64]*model.Enrollment),
	}
}

func (m *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Users:       memUsers{m},
		Courses:     memCourses{m},
		Enrollments: memEnrollments{m},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) enrollmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enrollments)
}

type memUsers struct{ m *memStore }

func (r memUsers) GetByLogin(_ context.Context, login string) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[u.Login]; ok {
		return repository.ErrDuplicate
	}
	u.ID = r.m.id()
	cp := *u
	r.m.users[u.Login] = &cp
	return nil
}

type memCourses struct{ m *memStore }

func (r memCourses) GetByName(_ context.Context, name string) (*model.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.courses[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memCourses) List(_ context.Context) ([]model.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.listCalls++
	out := make([]model.Course, 0, len(r.m.courses))
	for _, c := range r.m.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCourses) Create(_ context.Context, c *model.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[c.CourseName]; ok {
		return repository.ErrDuplicate
	}
	c.ID = r.m.id()
	cp := *c
	r.m.courses[c.CourseName] = &cp
	return nil
}

type memEnrollments struct{ m *memStore }

func (r memEnrollments) Get(_ context.Context, userID, courseID int64) (*model.Enrollment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, e := range r.m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memEnrollments) ListByUser(_ context.Context, userID int64) ([]model.Enrollment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Enrollment
	for _, e := range r.m.enrollments {
		if e.UserID != userID {
			continue
		}
		cp := *e
		for _, c := range r.m.courses {
			if c.ID == e.CourseID {
				course := *c
				cp.Course = &course
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memEnrollments) Create(_ context.Context, e *model.Enrollment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.createErr; err != nil {
		r.m.createErr = nil
		return err
	}
	for _, existing := range r.m.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return repository.ErrDuplicate
		}
	}
	e.ID = r.m.id()
	cp := *e
	r.m.enrollments[e.ID] = &cp
	return nil
}

func (r memEnrollments) Delete(_ context.Context, userID, courseID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, e := range r.m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			delete(r.m.enrollments, id)
		}
	}
	return nil
}

// memCatalog records cache traffic for ListCourses tests.
type memCatalog struct {
	entry   []model.CourseDTO
	present bool
	getErr  error
	sets    int
}

func (c *memCatalog) Get(context.Context) ([]model.CourseDTO, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.entry, c.present, nil
}

func (c *memCatalog) Set(_ context.Context, courses []model.CourseDTO) error {
	c.sets++
	c.entry = courses
	c.present = true
	return nil
}

func (c *memCatalog) Invalidate(context.Context) error {
	c.entry = nil
	c.present = false
	return nil
}

var errStoreDown = errors.New("store down")

// strictCourses fails like Postgres on parameters that are not valid UTF-8.
type strictCourses struct{ memCourses }

func (r strictCourses) GetByName(ctx context.Context, name string) (*model.Course, error) {
	if !utf8.ValidString(name) {
		return nil, errors.New(`invalid byte sequence for encoding "UTF8"`)
	}
	return r.memCourses.GetByName(ctx, name)
}
