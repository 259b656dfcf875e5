// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cinerate/internal/logging"
)

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// Error collects every failed rule of one struct.
type Error struct {
	fields []FieldError
}

// Errors returns the failures in field order.
func (e *Error) Errors() []FieldError { return e.fields }

// Fields returns the tag-derived names of the failing fields.
func (e *Error) Fields() []string {
	names := make([]string, len(e.fields))
	for i, f := range e.fields {
		names[i] = f.Field
	}
	return names
}

func (e *Error) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Validator returns the shared validator, building it on first use.
func Validator() *validator.Validate {
	sharedOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
		if err := v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || logging.ValidLevel(s)
		}); err != nil {
			panic(fmt.Sprintf("register loglevel validator: %v", err))
		}
		shared = v
	})
	return shared
}

// tagName reports a field by its koanf key, then its json name, then its Go name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"koanf", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return fld.Name
}

// ValidateStruct checks s against its validate tags. It returns nil when s
// is valid.
//
//	if verr := validation.ValidateStruct(&cfg.Model); verr != nil {
//	    return fmt.Errorf("model: %w", verr)
//	}
func ValidateStruct(s any) *Error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

// Validate is ValidateStruct typed as error, so a valid struct yields a
// true nil.
func Validate(s any) error {
	if verr := ValidateStruct(s); verr != nil {
		return verr
	}
	return nil
}

var comparisons = map[string]string{
	"gt":  "greater than",
	"gte": "greater than or equal to",
	"lt":  "less than",
	"lte": "less than or equal to",
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "loglevel":
		return field + " must be one of trace, debug, info, warn, error, fatal, panic, disabled"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	}
	if cmp, ok := comparisons[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be %s %s", field, cmp, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
