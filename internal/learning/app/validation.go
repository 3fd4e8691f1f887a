package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for the input value objects.
// Callers may validate earlier, but caller-validated state is never trusted
// alone.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the input validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateStruct checks the struct's `validate` tags and reports the first
// failing field as an ErrValidation.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return fmt.Errorf("%w: field %s fails rule %q", ErrValidation, first.Field(), first.Tag())
	}

	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `validate:"required,min=4"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=4"`
}

// ProfileInput carries the mutable fields of a profile update.
type ProfileInput struct {
	Name  string `validate:"required,min=4"`
	Email string `validate:"required,email"`
}

// CourseInput carries the author-editable fields of a course.
type CourseInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// LessonInput carries the author-editable fields of a lesson.
type LessonInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}
