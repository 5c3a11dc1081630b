// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/tomtom215/agentboard/internal/models"
)

const codeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the custom tags registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// "required" accepts whitespace-only strings.
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank validator: %v", err))
		}
	})
	return validate
}

// FieldError describes one failed constraint.
type FieldError struct {
	field   string
	tag     string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e FieldError) Tag() string { return e.tag }

func (e FieldError) Error() string { return e.message }

// RequestValidationError collects every failed constraint of one struct.
type RequestValidationError struct {
	fields []FieldError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.fields
}

func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		msgs[i] = f.message
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError converts the failure to the VALIDATION_ERROR response body.
// A single failure names its field in Details; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	switch len(ve.fields) {
	case 0:
		return &models.APIError{Code: codeValidation, Message: "Validation failed"}
	case 1:
		f := ve.fields[0]
		return &models.APIError{
			Code:    codeValidation,
			Message: f.message,
			Details: map[string]interface{}{"field": f.field, "tag": f.tag, "value": f.value},
		}
	}

	fields := make([]map[string]interface{}, len(ve.fields))
	msgs := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		fields[i] = map[string]interface{}{"field": f.field, "tag": f.tag, "message": f.message}
		msgs[i] = f.field + ": " + f.message
	}
	return &models.APIError{
		Code:    codeValidation,
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// ValidateStruct runs the shared validator over s.
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{fields: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: describe(fe),
		}
	}
	return &RequestValidationError{fields: out}
}

// messages maps tags to templates; {f} is the field, {p} the tag parameter.
var messages = map[string]string{
	"required": "{f} is required",
	"notblank": "{f} must not be blank",
	"url":      "{f} must be a valid URL",
	"oneof":    "{f} must be one of: {p}",
	"gte":      "{f} must be greater than or equal to {p}",
	"lte":      "{f} must be less than or equal to {p}",
	"gt":       "{f} must be greater than {p}",
	"lt":       "{f} must be less than {p}",
}

func describe(fe validator.FieldError) string {
	tmpl, ok := messages[fe.Tag()]
	if !ok {
		tmpl = lengthMessage(fe)
	}
	return strings.NewReplacer("{f}", fe.Field(), "{p}", fe.Param()).Replace(tmpl)
}

func lengthMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min":
		return "{f} must be at least {p}" + unit
	case "max":
		return "{f} must be at most {p}" + unit
	default:
		return "{f} failed " + fe.Tag() + " validation"
	}
}
