package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxCourseNameLength matches the courses.course_name column width.
const MaxCourseNameLength = 255

// TagCourseName validates a course name: no surrounding whitespace, slashes or control characters.
const TagCourseName = "coursename"

var courseNameMessage = fmt.Sprintf(
	"{0} must be at most %d bytes with no slashes, control characters or leading/trailing spaces",
	MaxCourseNameLength)

var (
	// ginTrans translates errors from Gin's binding engine.
	ginTrans ut.Translator

	// structValidate validates plain structs (seed files) using `validate` tags.
	structValidate = govalidator.New(govalidator.WithRequiredStructEnabled())
	structTrans    = configure(structValidate, "yaml")
)

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		ginTrans = configure(v, "uri")
	}
}

// configure installs tag-name lookup, the course name rule and English translations on v.
func configure(v *govalidator.Validate, nameTag string) ut.Translator {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{nameTag, "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation(TagCourseName, func(fl govalidator.FieldLevel) bool {
		return ValidCourseName(fl.Field().String())
	})

	// Register English translations.
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterTranslation(TagCourseName, trans,
		func(ut ut.Translator) error {
			return ut.Add(TagCourseName, courseNameMessage, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T(TagCourseName, fe.Field())
			return t
		},
	)
	return trans
}

// ValidCourseName reports whether name is usable as a course name path value.
func ValidCourseName(name string) bool {
	if name == "" || name != strings.TrimSpace(name) {
		return false
	}
	if len(name) > MaxCourseNameLength {
		return false
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	return translate(err, ginTrans, govalidator.FieldError.Field)
}

func translate(err error, trans ut.Translator, key func(govalidator.FieldError) string) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans == nil {
				fields[key(fe)] = fe.Error()
				continue
			}
			fields[key(fe)] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// BindURI binds and validates path parameters into dst.
// Returns nil on success or a translated field error map on failure.
func BindURI(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindUri(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// Struct validates s using its `validate` tags.
// Returns nil on success or a translated error map keyed by field path
// (for example "courses[1].courseName").
func Struct(s interface{}) map[string]string {
	if err := structValidate.Struct(s); err != nil {
		return translate(err, structTrans, fieldPath)
	}
	return nil
}

// fieldPath drops the root struct name from the error namespace.
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
