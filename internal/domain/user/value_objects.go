package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"slot-swapper/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Wrap(errs.ErrInvalidInput, "invalid email format")
	ErrInvalidName     = errs.Wrap(errs.ErrInvalidInput, "name must be between 1 and 100 characters")
	ErrPasswordTooWeak = errs.Wrap(errs.ErrInvalidInput, "password must be at least 6 characters long")
)

const (
	MinPasswordLength = 6
	MaxNameLength     = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) Value() string {
	return n.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < MinPasswordLength {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
