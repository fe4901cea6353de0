package validator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidCourseName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain", "CS101", true},
		{"spaces inside", "Intro to Go", true},
		{"unicode", "Mathématiques", true},
		{"empty", "", false},
		{"leading space", " CS101", false},
		{"trailing space", "CS101 ", false},
		{"slash", "CS/101", false},
		{"control", "CS\t101", false},
		{"too long", strings.Repeat("a", MaxCourseNameLength+1), false},
		{"max length", strings.Repeat("a", MaxCourseNameLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCourseName(tt.in); got != tt.want {
				t.Fatalf("ValidCourseName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

type seedCourse struct {
	CourseName string `yaml:"courseName" validate:"required,coursename"`
	TeacherID  int64  `yaml:"teacherId" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	if fields := Struct(seedCourse{CourseName: "CS101", TeacherID: 1}); fields != nil {
		t.Fatalf("unexpected errors %v", fields)
	}

	fields := Struct(seedCourse{CourseName: "bad/name", TeacherID: -1})
	if _, ok := fields["courseName"]; !ok {
		t.Fatalf("missing courseName error in %v", fields)
	}
	if _, ok := fields["teacherId"]; !ok {
		t.Fatalf("missing teacherId error in %v", fields)
	}

	fields = Struct(seedCourse{})
	if msg := fields["courseName"]; !strings.Contains(msg, "required") {
		t.Fatalf("courseName message = %q", msg)
	}
}

type coursePath struct {
	CourseName string `uri:"courseName" binding:"required,coursename"`
}

func TestBindURI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	r := gin.New()
	r.GET("/course/:courseName", func(c *gin.Context) {
		var p coursePath
		if fields := BindURI(c, &p); fields != nil {
			c.JSON(http.StatusBadRequest, fields)
			return
		}
		c.String(http.StatusOK, p.CourseName)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/course/CS101", nil))
	if w.Code != http.StatusOK || w.Body.String() != "CS101" {
		t.Fatalf("status = %d body = %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/course/%20CS101", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var fields map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := fields["courseName"]; !ok {
		t.Fatalf("fields = %v, want courseName key", fields)
	}
}

func TestCourseNameMessageNamesLengthLimit(t *testing.T) {
	long := strings.Repeat("a", MaxCourseNameLength+1)
	if ValidCourseName(long) {
		t.Fatal("over-long name accepted")
	}

	fields := Struct(seedCourse{CourseName: long})
	msg := fields["courseName"]
	if !strings.Contains(msg, "at most 255") {
		t.Fatalf("courseName message = %q, want it to name the length limit", msg)
	}
	if strings.Contains(msg, "{0}") || !strings.HasPrefix(msg, "courseName ") {
		t.Fatalf("courseName message = %q, want the field name substituted", msg)
	}
}
