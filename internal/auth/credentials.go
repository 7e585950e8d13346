package auth

import (
	"errors"
	"regexp"
)

// Credential limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 3
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

// Credential validation errors.
var (
	ErrUsernameLength  = errors.New("username must be 3-30 characters")
	ErrUsernameInvalid = errors.New("username contains invalid characters")
	ErrPasswordLength  = errors.New("password must be 3-128 characters")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
)

// usernameRegex allows letters, digits, underscore and hyphen.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateCredentials checks registration input against the credential rules.
// Password content is unrestricted beyond length; it is hashed, never stored.
func ValidateCredentials(name, username, password string) error {
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return ErrUsernameLength
	}

	if !usernameRegex.MatchString(username) {
		return ErrUsernameInvalid
	}

	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrPasswordLength
	}

	return nil
}
