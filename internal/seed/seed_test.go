package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/database"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository"
	"github.com/angelina-scw/course-enroll-backend-project/internal/repository/sqlite"
)

const sampleSeed = `
users:
  - login: alice
  - login: carol
courses:
  - courseName: CS101
    courseContent: Intro to CS
    teacherId: 7
    courseLocation: Room 1
  - courseName: MA201
    courseContent: Linear Algebra
    teacherId: 9
    courseLocation: Room 2
`

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateCatalog(context.Context) error {
	c.calls++
	return nil
}

func openRepos(t *testing.T) repository.Repositories {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "seed.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.MigrateSQLite(db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.NewRepositories(db)
}

func TestLoad(t *testing.T) {
	f, err := Load(strings.NewReader(sampleSeed))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Users) != 2 || len(f.Courses) != 2 {
		t.Fatalf("file = %+v", f)
	}
	if c := f.Courses[1]; c.CourseName != "MA201" || c.TeacherID != 9 || c.CourseLocation != "Room 2" {
		t.Fatalf("course = %+v", c)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantKey string
	}{
		{name: "unknown key", doc: "users:\n  - login: alice\n    password: x\n"},
		{name: "missing login", doc: "users:\n  - login: \"\"\n", wantKey: "users[0].login"},
		{name: "bad course name", doc: "courses:\n  - courseName: \"a/b\"\n", wantKey: "courses[0].courseName"},
		{name: "negative teacher", doc: "courses:\n  - courseName: CS101\n    teacherId: -1\n", wantKey: "courses[0].teacherId"},
		{name: "duplicate course", doc: "courses:\n  - courseName: CS101\n  - courseName: CS101\n", wantKey: "courses[1].courseName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantKey == "" {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := ve.Fields[tt.wantKey]; !ok {
				t.Fatalf("fields = %v, want key %s", ve.Fields, tt.wantKey)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Users) != 0 || len(f.Courses) != 0 {
		t.Fatalf("file = %+v", f)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	repos := openRepos(t)
	inv := &countingInvalidator{}
	seeder := NewSeeder(repos, inv, zerolog.Nop())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sampleSeed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}

	res, err := seeder.Apply(ctx, f)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if res != (Result{UsersCreated: 2, CoursesCreated: 2}) {
		t.Fatalf("first result = %+v", res)
	}
	if inv.calls != 1 {
		t.Fatalf("invalidations = %d, want 1", inv.calls)
	}

	res, err = seeder.Apply(ctx, f)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if res != (Result{UsersSkipped: 2, CoursesSkipped: 2}) {
		t.Fatalf("second result = %+v", res)
	}
	if inv.calls != 1 {
		t.Fatalf("invalidations = %d, want 1", inv.calls)
	}

	courses, err := repos.Courses.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 2 || courses[0].CourseName != "CS101" {
		t.Fatalf("courses = %+v", courses)
	}
	if _, err := repos.Users.GetByLogin(ctx, "carol"); err != nil {
		t.Fatalf("carol: %v", err)
	}
}
