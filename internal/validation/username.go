// Package validation contains client-side input validation rules.
package validation

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Validation errors for candidate usernames. The messages are shown to the
// user verbatim.
var (
	ErrUsernameTooShort = errors.New("Username must be at least 2 characters")
	ErrUsernameTooLong  = errors.New("Username must be at most 30 characters")
	ErrUsernamePattern  = errors.New("Username can only contain lowercase letters, numbers, and underscores")
	ErrUsernameTaken    = errors.New("This username is already taken")
	ErrUsernameCheck    = errors.New("Could not check username availability")
)

// ValidateUsername checks a candidate username against the static rules,
// short-circuiting at the first failure. A nil result means the candidate
// passes local checks and may proceed to the availability endpoint.
func ValidateUsername(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 2 {
		return ErrUsernameTooShort
	}
	if length > 30 {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(name) {
		return ErrUsernamePattern
	}
	return nil
}
