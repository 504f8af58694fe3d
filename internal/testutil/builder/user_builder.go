package builder

import (
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/usecase/commands"
)

type UserBuilder struct {
	Name         string
	Email        string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Name:         "Test User",
		Email:        "test@example.com",
		Password:     "password123",
		PasswordHash: "hashed_password",
		CreatedAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	name, err := user.NewName(u.Name)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	return user.NewUser(name, email, u.PasswordHash, u.CreatedAt)
}

func (u *UserBuilder) BuildRegisterInput() commands.RegisterInput {
	return commands.RegisterInput{Name: u.Name, Email: u.Email, Password: u.Password}
}

func (u *UserBuilder) BuildLoginInput() commands.LoginInput {
	return commands.LoginInput{Email: u.Email, Password: u.Password}
}

// Fluent builder methods
func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithPassword(password string) *UserBuilder {
	u.Password = password
	return u
}
