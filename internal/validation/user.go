// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	minPasswordLen = 5
	maxPasswordLen = 128
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9@._+\-]+$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9][0-9 \-]{4,14}$`)
)

// ValidatePassword checks if a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidatePasswordPair checks the password against its confirmation.
func ValidatePasswordPair(password, password2 string) error {
	if password != password2 {
		return fmt.Errorf("passwords don't match")
	}
	return ValidatePassword(password)
}

// ValidateUsername checks if a username meets requirements. Usernames are
// optional; callers should skip the check for empty values.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 150 {
		return fmt.Errorf("username must not exceed 150 characters")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, digits and @/./+/-/_")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePhoneNumber checks an optional phone number field.
func ValidatePhoneNumber(phone string) error {
	if len(phone) > 15 {
		return fmt.Errorf("phone number must not exceed 15 characters")
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone number format")
	}
	return nil
}
