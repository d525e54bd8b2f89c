package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/doclocker/internal/common"
)

// NewValidator returns the validator used for service requests. Besides the
// built-in tags it knows "nospace", and it names fields by their "label" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return strings.ToLower(f.Name)
	})

	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})

	return v
}

// validationError converts validator output into a *common.ValidationError.
// Errors of any other kind are returned unchanged.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		problems = append(problems, fieldError(fe))
	}
	return common.NewValidationError(problems...)
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "nospace":
		return fmt.Sprintf("%s must not contain spaces", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be selected", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
