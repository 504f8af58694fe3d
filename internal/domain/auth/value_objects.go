package auth

import (
	"slot-swapper/internal/domain/user"
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}

// Registration is the validated input for creating an account.
type Registration struct {
	name        user.Name
	credentials Credentials
}

func NewRegistration(name, email, password string) (Registration, error) {
	n, err := user.NewName(name)
	if err != nil {
		return Registration{}, err
	}
	creds, err := NewCredentials(email, password)
	if err != nil {
		return Registration{}, err
	}
	return Registration{name: n, credentials: creds}, nil
}

func (r Registration) Name() user.Name          { return r.name }
func (r Registration) Credentials() Credentials { return r.credentials }
