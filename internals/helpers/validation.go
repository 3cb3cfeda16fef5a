package helper

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Phone contract for this domain: +91 followed by exactly 10 digits.
var phoneRe = regexp.MustCompile(`^\+91\d{10}$`)

// IsValidPhone reports whether s matches the +91XXXXXXXXXX contract.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance with the custom phone rule
// registered (tag: e164in).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("e164in", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
	})
	return validate
}

// ValidationErrorMap flattens validator.v10 errors to field → messages, so the
// caller can name the offending field instead of returning a generic failure.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "e164in":
			msg = "must be +91 followed by 10 digits"
		case "min":
			msg = "is below the minimum " + fe.Param()
		case "max":
			msg = "is above the maximum " + fe.Param()
		case "gte":
			msg = "must be at least " + fe.Param()
		case "datetime":
			msg = "must be a date in YYYY-MM-DD format"
		case "url":
			msg = "must be a valid URL"
		case "uuid":
			msg = "must be a valid UUID"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		default:
			msg = "failed rule " + fe.Tag()
		}
		out[field] = append(out[field], msg)
	}
	return out
}
