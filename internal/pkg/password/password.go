package password

import (
	"errors"

	"slot-swapper/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmpty    = errors.New("password is empty")
	ErrMismatch = errors.New("password does not match")
)

// Cost is bcrypt's default; hashes stored with another cost still verify.
const Cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash stored in users.password_hash.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt hash")
	}
	return string(hashed), nil
}

// Verify returns ErrMismatch for a wrong password. Any other error means the
// stored hash itself is unusable.
func Verify(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrEmpty
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return errs.Wrap(err, "bcrypt compare")
	}
}
