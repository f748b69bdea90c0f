// Package form binds editable models to remote resources: validation,
// create/update dialogs and delete confirmation.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

// ValidationError is returned when a model fails its declared rules.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// FieldsOf extracts field errors from err, or nil.
func FieldsOf(err error) FieldErrors {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Validator checks models using `validate` struct tags and reports fields by
// their JSON names.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates model and returns a *ValidationError on failure.
func (v *Validator) Struct(model any) error {
	err := v.v.Struct(model)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; !seen {
			fields[name] = message(fe)
		}
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return "Must be at most " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "lt":
		return "Must be less than " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters long"
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	case "ltefield":
		return "Must not exceed " + fe.Param()
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "numeric":
		return "Must contain digits only"
	case "datetime":
		return "Must be a date in " + fe.Param() + " format"
	default:
		return "Invalid value"
	}
}
