package library

import (
	"errors"
	"strings"
	"unicode"
)

// Signup validation. The stores accept whatever they are handed; the
// shell runs these checks before calling CreateUser.

var acceptedEmailDomains = []string{"gmail.com", "gmail.org", "gmail.in"}

// ValidateName accepts names made of letters only.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return errors.New("invalid name: use only alphabets")
		}
	}
	return nil
}

// ValidateEmail accepts Gmail addresses only.
func ValidateEmail(email string) error {
	lower := strings.ToLower(email)
	at := strings.IndexByte(lower, '@')
	if at <= 0 {
		return errors.New("invalid email address")
	}
	for _, domain := range acceptedEmailDomains {
		if strings.HasSuffix(lower, domain) {
			return nil
		}
	}
	return errors.New("invalid email: use a Gmail address")
}

// ValidatePassword requires at least 6 characters with a letter, a digit
// and a special character.
func ValidatePassword(password string) error {
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case r < 128:
			hasSpecial = true
		}
	}
	if len(password) < 6 || !hasLetter || !hasDigit || !hasSpecial {
		return errors.New("weak password: use at least 6 characters, 1 alphabet, 1 number, and 1 special character")
	}
	return nil
}
