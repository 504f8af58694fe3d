package user

import (
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

// User is the identity that owns slots. Credentials are managed by the auth commands.
type User struct {
	id           uuid.UUID
	name         Name
	email        Email
	passwordHash string
	createdAt    time.Time
}

func NewUser(name Name, email Email, passwordHash string, now time.Time) (*User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate user id")
	}
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
	}, nil
}

func Reconstruct(id uuid.UUID, name, email, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         Name{value: name},
		email:        Email{value: email},
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() Name           { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
