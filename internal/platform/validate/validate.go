// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Services build one Validator per operation, chain the rules that apply and
// return [Validator.Err]. Handlers never validate; they only decode.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
)

var (
	// slugRegex matches letters, digits, hyphens and underscores.
	slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// usernameRegex matches word characters plus . @ + -
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	fold = cases.Fold()
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. Create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Email fails unless value is a bare RFC 5322 address within the length limit.
func (v *Validator) Email(field, value string) *Validator {
	if utf8.RuneCountInString(value) > constants.MaxEmailLength {
		v.add(field, fmt.Sprintf("Maximum %d characters", constants.MaxEmailLength))
		return v
	}
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails unless value matches ^[-a-zA-Z0-9_]+$ and fits the slug limit.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must contain only letters, digits, hyphens and underscores")
		return v
	}
	return v.MaxLen(field, value, constants.MaxSlugLength)
}

// Username enforces the account name rules.
//
// # Rules
//   - required, at most 150 characters
//   - letters, digits and . @ + - _ only
//   - not "me" under Unicode case folding ("ME", "Me" are rejected too)
func (v *Validator) Username(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
		return v
	}
	if utf8.RuneCountInString(value) > constants.MaxUsernameLength {
		v.add(field, fmt.Sprintf("Maximum %d characters", constants.MaxUsernameLength))
		return v
	}
	if !usernameRegex.MatchString(value) {
		v.add(field, "Must contain only letters, digits and @/./+/-/_")
		return v
	}
	if IsReservedUsername(value) {
		v.add(field, fmt.Sprintf("The username %q is reserved", value))
	}
	return v
}

// Year fails if year lies in the future relative to now, or below min when set.
func (v *Validator) Year(field string, year int, now time.Time, min *int) *Validator {
	if year > now.Year() {
		v.add(field, fmt.Sprintf("Year cannot be later than %d", now.Year()))
		return v
	}
	if min != nil && year < *min {
		v.add(field, fmt.Sprintf("Year cannot be earlier than %d", *min))
	}
	return v
}

// Score fails unless score is an integer in [1, 10].
func (v *Validator) Score(field string, score int) *Validator {
	return v.Custom(field, score < constants.MinScore || score > constants.MaxScore,
		fmt.Sprintf("score must be between %d and %d", constants.MinScore, constants.MaxScore))
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("email", taken, "A user with this email already exists")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] if any rule failed, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasFieldError reports whether field already failed a rule.
func (v *Validator) HasFieldError(field string) bool {
	for _, e := range v.errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// IsReservedUsername reports whether name folds to the reserved "me".
func IsReservedUsername(name string) bool {
	return fold.String(name) == fold.String(constants.ReservedUsername)
}
