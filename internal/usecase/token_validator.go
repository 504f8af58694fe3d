package usecase

import (
	"context"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/jwt"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrUnknownBearer = errs.New("token subject no longer exists")

// TokenValidator resolves a bearer token to the id of an existing user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	users      queries.UserReadStore
}

func NewTokenValidator(jwtService *jwt.Service, users queries.UserReadStore) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		users:      users,
	}
}

func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err = t.users.FindByID(ctx, claims.UserID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrUnknownBearer
		}
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
