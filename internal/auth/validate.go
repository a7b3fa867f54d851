package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameRequired     = errors.New("name is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func validateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !ValidEmail(email) {
		return ErrEmailInvalid
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func validateRegistration(params RegisterParams, passwordConfirm string) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(params.Email) == "" {
		return ErrEmailRequired
	}
	if !ValidEmail(params.Email) {
		return ErrEmailInvalid
	}
	if len(params.Password) < minPasswordLength {
		return errPasswordTooShort
	}
	if params.Password != passwordConfirm {
		return ErrPasswordMismatch
	}
	return nil
}
