package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo.Echo.Validator.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator whose messages name fields by JSON key,
// e.g. "email is required".
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, len(fields))
	for i, fe := range fields {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

var tagMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"url":      "must be a valid URL",
	"gt":       "must be greater than %s",
	"gte":      "must be %s or more",
	"lt":       "must be less than %s",
	"min":      "must be at least %s",
	"oneof":    "must be one of: %s",
}

func describe(fe validator.FieldError) string {
	tmpl, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
	if strings.Contains(tmpl, "%s") {
		tmpl = fmt.Sprintf(tmpl, fe.Param())
	}
	return fe.Field() + " " + tmpl
}
