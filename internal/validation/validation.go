// Package validation wraps go-playground/validator and converts tag failures
// into the field-level messages of the apperr taxonomy.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// A title's year may not be in the future.
	_ = v.RegisterValidation("notfutureyear", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= time.Now().Year()
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates a request DTO and returns a 400-class apperr carrying
// one message per failed field, or nil.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[strings.ToLower(fe.Field())] = fieldError(fe)
		}
		return apperr.ValidationFields(fields)
	}
	return apperr.Internal(err)
}

// Var validates a single value against a tag expression.
func Var(field, value, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return apperr.ValidationFields(map[string]string{
			field: fieldErrorf(field, ve[0].Tag(), ve[0].Param()),
		})
	}
	return apperr.ValidationFields(map[string]string{
		field: tagError(field, tag),
	})
}

func fieldError(fe validator.FieldError) string {
	return fieldErrorf(strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
}

func tagError(field, tag string) string {
	return fieldErrorf(field, tag, "")
}

func fieldErrorf(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "notfutureyear":
		return field + " must not be in the future"
	case "slug":
		return field + " must be a valid slug"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}
