// Package validator runs the declarative `validate:` rule sets attached to
// domain entities and request values, reporting every violation at once.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New returns a Validator with the domain rules registered.
func New() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	_ = v.validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.validate.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.Before(v.now())
	})

	return v
}

// Struct validates s and returns a *apperror.ValidationError listing every
// failed rule, or nil.
func (v *Validator) Struct(s interface{}) error {
	return v.translate(v.validate.Struct(s), "")
}

// Var validates a single value under the given field name.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	return v.translate(v.validate.Var(value, tag), field)
}

func (v *Validator) translate(err error, field string) error {
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("invalid validation error: %w", err)
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := fe.Field()
		if field != "" {
			name = field
		}
		messages = append(messages, message(name, fe.Tag(), fe.Param()))
	}
	return apperror.NewValidationError(messages...)
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", field)
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", field, param)
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, param)
	case "role":
		return fmt.Sprintf("field '%s' must be one of User, Admin", field)
	case "category":
		return fmt.Sprintf("field '%s' must be a known category", field)
	case "pastdate":
		return fmt.Sprintf("field '%s' must be in the past", field)
	default:
		return fmt.Sprintf("field '%s' validation failed on tag '%s'", field, tag)
	}
}
