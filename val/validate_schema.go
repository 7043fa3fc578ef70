package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ValidateSchema validates a struct (or pointer to struct) event using its `validate` tags.
//
// Failures are reported as a single errx validation error whose fields map each
// offending field name to a readable description. Non-struct events are rejected
// with the same code.
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = describe(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		fmt.Sprintf("Unknown validation error: %s", err.Error()),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

//nolint:gochecknoglobals // static lookup table
var descriptions = map[string]string{
	"required":    "This field is required",
	"email":       "Invalid email format",
	"url":         "Must be a valid URL",
	"uri":         "Must be a valid URI",
	"uuid":        "Must be a valid UUID",
	"json":        "Must be valid JSON",
	"alphanum":    "Must contain only alphanumeric characters",
	"numeric":     "Must be a valid number",
	"gte":         "Must be greater than or equal to %s",
	"lte":         "Must be less than or equal to %s",
	"gt":          "Must be greater than %s",
	"lt":          "Must be less than %s",
	"containsany": "Must contain at least one of: %s",
	"excludes":    "Must not contain: %s",
	"startswith":  "Must start with: %s",
	"endswith":    "Must end with: %s",
	"eqfield":     "Must be equal to %s",
	"nefield":     "Must not be equal to %s",
	"gtfield":     "Must be greater than %s",
	"ltfield":     "Must be less than %s",
}

func describe(fieldErr validator.FieldError) string {
	tag, param := fieldErr.Tag(), fieldErr.Param()
	isString := fieldErr.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if isString {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "len":
		if isString {
			return fmt.Sprintf("Must be exactly %s characters", param)
		}
		return fmt.Sprintf("Must have exactly %s items", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	}

	if desc, ok := descriptions[tag]; ok {
		if strings.Contains(desc, "%s") {
			return fmt.Sprintf(desc, param)
		}
		return desc
	}

	return fmt.Sprintf("Failed validation: %s", tag)
}
