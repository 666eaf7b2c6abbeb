// Package validation runs the client-side form checks that must pass before
// anything is sent to the backend. Rules are declared with `validate` struct
// tags and checked by go-playground/validator; field names in errors follow
// the struct's json tags.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxAvatarSize is the largest avatar accepted for upload.
const MaxAvatarSize = 5 * 1024 * 1024

// ErrValidation is matched by every error produced by this package.
var ErrValidation = errors.New("validation failed")

var (
	innPattern   = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	phonePattern = regexp.MustCompile(`^\+7\d{10}$`)
)

// Errors maps a field name to a human readable problem.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag name.
	_ = v.RegisterValidation("inn", func(fl validator.FieldLevel) bool {
		return innPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_ru", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates a tagged form. It returns nil or an Errors value.
func Struct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "has invalid email format"
	case "inn":
		return "must contain 10 or 12 digits"
	case "phone_ru":
		return "must look like +7XXXXXXXXXX"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}

// DateRange checks an optional period: both ends or none, start not after end.
func DateRange(start, end *time.Time) error {
	switch {
	case start == nil && end == nil:
		return nil
	case start == nil || end == nil:
		return Errors{"dateRange": "select both dates"}
	case start.After(*end):
		return Errors{"dateRange": "start date is after end date"}
	}
	return nil
}

// Avatar checks the size limit and that the first bytes look like an image.
func Avatar(size int64, head []byte) error {
	if size > MaxAvatarSize {
		return Errors{"avatar": "file must not exceed 5 MB"}
	}
	if size == 0 {
		return Errors{"avatar": "file is empty"}
	}
	if ct := http.DetectContentType(head); !strings.HasPrefix(ct, "image/") {
		return Errors{"avatar": "please upload an image"}
	}
	return nil
}
