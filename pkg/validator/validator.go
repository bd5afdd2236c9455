package validator

import (
	"fmt"
	"regexp"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxPersonNameLen  = 100
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt          = "email cannot be empty"
	errEmailLengthFmt         = "email must be between %d and %d characters"
	errEmailInvalidFmt        = "invalid email format"
	errPasswordMinLengthFmt   = "password must be at least %d characters"
	errPasswordMaxLengthFmt   = "password must not exceed %d characters"
	errPersonNameEmptyFmt     = "%s cannot be empty"
	errPersonNameMaxLengthFmt = "%s must not exceed %d characters"
	errPersonNameControlFmt   = "%s cannot contain control characters"
	errPhoneInvalidFmt        = "invalid phone number"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 .-]{5,19}$`)
)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// PersonName validates a first or last name; field names the input in the error
func PersonName(field, name string) error {
	if name == "" {
		return fmt.Errorf(errPersonNameEmptyFmt, field)
	}

	if len(name) > maxPersonNameLen {
		return fmt.Errorf(errPersonNameMaxLengthFmt, field, maxPersonNameLen)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errPersonNameControlFmt, field)
		}
	}

	return nil
}

// Phone validates an optional phone number; empty is accepted
func Phone(phone string) error {
	if phone == "" {
		return nil
	}

	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf(errPhoneInvalidFmt)
	}

	return nil
}
