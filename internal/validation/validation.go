// Package validation builds the go-playground validator used to check
// drafts before they reach a registry.
//
// Rules are attached to draft structs with validate:"..." tags (see the
// types package). Besides the validator's built-in tags, this package
// registers:
//
//	college_email — the console's email pattern, stricter about the
//	                top-level segment than the built-in "email" tag.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagCollegeEmail is the tag name of the custom email rule.
const TagCollegeEmail = "college_email"

// emailPattern: letters/digits/./_/- , "@", a domain of letters/digits/./-,
// a dot, and a 2–6 letter top-level segment.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// ValidEmail reports whether email matches the console's email pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// New returns a validator with the custom tags registered.
//
// A *validator.Validate caches struct metadata, so callers should build one
// and reuse it rather than calling validator.New() per request.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// RegisterValidation only fails for an empty tag or a nil func, neither
	// of which can happen here.
	_ = v.RegisterValidation(TagCollegeEmail, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})

	return v
}
