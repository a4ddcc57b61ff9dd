// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/covidash/internal/dataset"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// FieldError is one failed rule, named by the field's json name.
type FieldError struct {
	Field   string      `json:"field"`
	Rule    string      `json:"rule"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Errors is a non-empty list of field failures.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Message
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// ValidateStruct runs the struct's validate tags. It returns nil when every
// rule passes.
func ValidateStruct(s interface{}) Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return Errors{{Field: "request", Rule: "struct", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		}
	}
	return out
}

// ParseDate accepts the same date layouts as the dataset loader, so a
// date read from the CSV can always be sent back as a selection.
func ParseDate(s string) (time.Time, error) {
	return dataset.ParseDate(strings.TrimSpace(s))
}

func describe(fe validator.FieldError) string {
	f, p := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "isodate":
		return f + " must be a date in YYYY-MM-DD format"
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", f, p, unit)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", f, p, unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, p)
	}
	return fmt.Sprintf("%s failed %s validation", f, fe.Tag())
}
