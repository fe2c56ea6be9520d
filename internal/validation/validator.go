// Package validation checks dashboard form submissions before they reach the
// record store. It wraps go-playground/validator with the few custom rules the
// forms need and turns failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// Saudi mobile numbers: 05XXXXXXXX, 5XXXXXXXX, +9665XXXXXXXX or 009665XXXXXXXX
	mobilePhoneReg = regexp.MustCompile(`^(\+?966|00966|0)?5\d{8}$`)
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result is either valid (no errors) or carries every failing field.
type Result struct {
	Errors []FieldError
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Fields maps form field names to their first error message.
func (r Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, fe := range r.Errors {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Message joins all messages, in field order, for a redirect marker.
func (r Result) Message() string {
	messages := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, ", ")
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report errors under the form field name rather than the Go name
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		mustRegister("isodate", isISODate)
		mustRegister("nonneg_int", isNonNegativeInt)
		mustRegister("nonneg_float", isNonNegativeFloat)
		mustRegister("mobile_phone", isMobilePhone)
	})

	return validate
}

func mustRegister(tag string, fn func(string) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(strings.TrimSpace(fl.Field().String()))
	})
	if err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Struct validates s, a pointer to a form struct carrying validate tags.
func Struct(s any) Result {
	err := getValidator().Struct(s)
	if err == nil {
		return Result{}
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return Result{Errors: []FieldError{{Field: "form", Tag: "invalid", Message: err.Error()}}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translateError(fe),
		})
	}

	return Result{Errors: out}
}

func isISODate(s string) bool {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isNonNegativeInt(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= 0
}

func isNonNegativeFloat(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= 0
}

func isMobilePhone(s string) bool {
	return mobilePhoneReg.MatchString(strings.ReplaceAll(s, " ", ""))
}

var errorMessageTemplates = map[string]string{
	"required":     "%s is required",
	"email":        "%s must be a valid email address",
	"url":          "%s must be a valid URL",
	"isodate":      "%s must be a valid date",
	"nonneg_int":   "%s must be a whole number of zero or more",
	"nonneg_float": "%s must be a number of zero or more",
	"mobile_phone": "%s must be a valid mobile number",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()

	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}

	return fmt.Sprintf("%s is invalid", field)
}
